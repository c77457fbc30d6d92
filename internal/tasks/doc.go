// Package tasks implements the playlist generation pipeline: prompt in, playlist URL out.
//
// # Pipeline
//
// [Engine.Run] executes one generation end to end:
//
//  1. Credential validation
//     - Missing fields short-circuit with a user-facing message, not an error
//  2. Authentication via the injected [CatalogFactory]
//     - Failures are fatal ([shared.ErrAuthFailed])
//  3. Optional listening context ([MusicContext]) when Request.History > 0
//  4. Text completion producing "Artist - Song Title" candidates
//     - An empty or failed completion is fatal ([shared.ErrGenerationFailed])
//  5. Per-candidate resolution via [Resolver]
//     - Unparseable candidates and catalog misses are skipped, shrinking the playlist
//     - Any other catalog error aborts the run
//  6. Playlist assembly via [Assembler]
//     - Additions are batched, at most [AddBatchSize] tracks per request
//
// # Resolution
//
// [Resolver.Resolve] issues a structured artist+track search first and a
// title-only fallback second, taking the top match of whichever tier hits.
//
// # Track Caching
//
// The optional [TrackCacher] interface short-circuits searches for previously
// resolved candidates. Resolutions are cached silently (errors ignored) so a
// broken cache never disrupts a run.
//
// # Diagnostics
//
// Every stage writes human-readable progress lines to the io.Writer handed to
// [Engine.Run]. The CLI passes stdout; the job engine passes a per-job buffer
// polled by status endpoints.
package tasks
