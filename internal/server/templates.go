package server

import "html/template"

// Inline templates keep the binary self-contained; the web surface is a thin
// veneer over the job engine and does not warrant an asset pipeline.

const baseStyle = `
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
       max-width: 640px; margin: 3rem auto; padding: 0 1rem; background: #f5f5f5; color: #333; }
.card { background: white; padding: 2rem; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
h1 { color: #1DB954; margin-top: 0; }
label { display: block; margin: 0.75rem 0 0.25rem; font-weight: 600; }
input { width: 100%; padding: 0.5rem; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
button { margin-top: 1rem; padding: 0.6rem 1.4rem; background: #1DB954; color: white;
         border: none; border-radius: 4px; cursor: pointer; font-size: 1rem; }
button.secondary { background: #999; }
pre { background: #222; color: #ddd; padding: 1rem; border-radius: 4px; white-space: pre-wrap; }
.error { color: #c0392b; }
a { color: #1DB954; }
`

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Mixtape</title><style>` + baseStyle + `</style></head>
<body>
  <div class="card">
    <h1>Mixtape</h1>
    <p>Describe the playlist you want and let the model do the rest.</p>
    <form method="POST" action="/">
      <label for="prompt">Prompt</label>
      <input type="text" id="prompt" name="prompt" placeholder="upbeat running music" required>
      <label for="length">Number of songs</label>
      <input type="number" id="length" name="length" value="10" min="1" max="100" required>
      <label for="name">Playlist name (optional)</label>
      <input type="text" id="name" name="name" placeholder="AI Generated Playlist">
      <button type="submit">Generate</button>
    </form>
    <p><a href="/config">Configure credentials</a></p>
  </div>
</body>
</html>
`))

var statusTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>Job Status</title><style>` + baseStyle + `</style></head>
<body>
  <div class="card">
    <h1>Generating playlist</h1>
    <p>Status: <span id="status">Checking...</span></p>
    <pre id="output"></pre>
    <p><a href="/">Start another</a></p>
  </div>
  <script>
    function poll() {
      fetch('/status/{{.JobID}}/check')
        .then(function (res) { return res.json(); })
        .then(function (data) {
          document.getElementById('status').textContent = data.status;
          document.getElementById('output').textContent = data.output;
          if (data.status !== 'Complete' && data.status !== 'Error') {
            setTimeout(poll, 2000);
          }
        })
        .catch(function () {
          document.getElementById('status').textContent = 'Error checking status';
        });
    }
    poll();
  </script>
</body>
</html>
`))

var configTemplate = template.Must(template.New("config").Parse(`<!DOCTYPE html>
<html>
<head><title>Configuration</title><style>` + baseStyle + `</style></head>
<body>
  <div class="card">
    <h1>Credentials</h1>
    {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
    <form method="POST" action="/config">
      <label for="client_id">Spotify Client ID</label>
      <input type="text" id="client_id" name="client_id" value="{{.Credentials.ClientID}}" required>
      <label for="client_secret">Spotify Client Secret</label>
      <input type="password" id="client_secret" name="client_secret" value="{{.Credentials.ClientSecret}}" required>
      <label for="redirect_uri">Spotify Redirect URI</label>
      <input type="text" id="redirect_uri" name="redirect_uri" value="{{.Credentials.RedirectURI}}" required>
      <label for="openai_key">OpenAI API Key</label>
      <input type="password" id="openai_key" name="openai_key" value="{{.Credentials.OpenAIKey}}" required>
      <button type="submit">Save</button>
    </form>
    <button class="secondary" onclick="resetConfig()">Reset</button>
  </div>
  <script>
    function resetConfig() {
      if (!confirm('Clear saved credentials?')) return;
      fetch('/reset_config', { method: 'POST' })
        .then(function () { window.location.reload(); });
    }
  </script>
</body>
</html>
`))
