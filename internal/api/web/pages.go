package web

// helpText lists every route for the /help endpoint.
const helpText = `fireplan-alarm-divera routes:

  GET  /            HTML landing page
  GET  /health      liveness probe
  GET  /ready       readiness probe
  GET  /version     build information
  GET  /status      pipeline state and counters as JSON
  GET  /time        current UTC time
  GET  /metrics     runtime and pipeline metrics as HTML
  GET  /echo/:msg   echoes :msg back
  GET  /help        this text
  GET  /ping        answers pong
  POST /submit      alarm ingest, requires ?token=<auth_token>
`

// landingPage is the HTML card shown when the service URL is opened in a
// browser. Placeholders: current UTC time, version.
const landingPage = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Fireplan-Alarm-DIVERA</title>
<style>
  body { font-family: sans-serif; background: #1d2330; color: #e6e8ef;
         display: flex; justify-content: center; padding-top: 4rem; }
  .card { background: #272e3f; border-radius: 8px; padding: 2rem 3rem;
          text-align: center; box-shadow: 0 4px 14px rgba(0,0,0,.4); }
  .badge { color: #3fb68b; font-weight: bold; }
  .muted { color: #9aa3b5; font-size: .85rem; }
</style>
</head>
<body>
<div class="card">
  <h1>Fireplan-Alarm-DIVERA</h1>
  <p class="badge">running</p>
  <p class="muted">%s</p>
  <p class="muted">Version %s</p>
</div>
</body>
</html>
`

// metricsPage is the HTML operator page served on /metrics. Placeholders:
// version, uptime, goroutines, heap KiB, sys KiB, process count, pipeline
// state, queue depth, queue capacity, received, dispatched, submitted, failed.
const metricsPage = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Fireplan-Alarm-DIVERA metrics</title>
<style>
  body { font-family: sans-serif; background: #1d2330; color: #e6e8ef; padding: 2rem; }
  table { border-collapse: collapse; margin-top: 1rem; }
  td { border: 1px solid #3a4256; padding: .4rem .8rem; }
  td:first-child { color: #9aa3b5; }
</style>
</head>
<body>
<h1>Metrics</h1>
<p>%s</p>
<table>
  <tr><td>uptime</td><td>%s</td></tr>
  <tr><td>goroutines</td><td>%d</td></tr>
  <tr><td>heap alloc</td><td>%d KiB</td></tr>
  <tr><td>sys memory</td><td>%d KiB</td></tr>
  <tr><td>processes on host</td><td>%d</td></tr>
  <tr><td>pipeline state</td><td>%s</td></tr>
  <tr><td>queue</td><td>%d / %d</td></tr>
  <tr><td>alarms received</td><td>%d</td></tr>
  <tr><td>cycles dispatched</td><td>%d</td></tr>
  <tr><td>records submitted</td><td>%d</td></tr>
  <tr><td>records failed</td><td>%d</td></tr>
</table>
</body>
</html>
`
