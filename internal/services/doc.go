// Package services defines the external collaborator interfaces for the playlist
// generator and implements them for Spotify and OpenAI.
//
// # Catalog Interface
//
// [CatalogService] abstracts the music catalog: authentication, search, playlist
// creation and batch track addition, plus the listening-history reads used to
// bias generation. [SpotifyService] is the production implementation.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication; the [oauth2] client refreshes
// expired tokens transparently when a refresh token is present. Outbound calls
// pass through a [rate.Limiter] so batch resolution cannot trip API limits.
//
// # OAuth Service Extension
//
// The [OAuthService] interface extends [CatalogService] for providers requiring
// a browser-redirect flow. [SpotifyService] implements it for the CLI auth command.
//
// # Text Interface
//
// [TextService] abstracts the generative-text completion call. [OpenAIService]
// implements it against the chat-completions endpoint with a system/user message
// pair; any OpenAI-compatible base URL can be substituted.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : OAuth token expired, reauthorization needed
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrMissingCredentials] : constructor given an incomplete bundle
package services
