package server

// indexHTML is the single-page UI served at /. It submits a query,
// follows the run's websocket event stream, and renders the final
// response.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>WebPilot</title>
<style>
  :root { color-scheme: light dark; }
  body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; }
  h1 { font-size: 1.4rem; }
  .hint { color: #888; font-size: 0.9rem; }
  form { display: flex; gap: 0.5rem; margin: 1rem 0; }
  input[type=text] { flex: 1; padding: 0.6rem; font-size: 1rem; }
  button { padding: 0.6rem 1.2rem; font-size: 1rem; cursor: pointer; }
  button:disabled { cursor: wait; opacity: 0.6; }
  #log { background: rgba(127,127,127,0.08); border-radius: 6px; padding: 0.8rem; font-family: ui-monospace, monospace; font-size: 0.82rem; white-space: pre-wrap; max-height: 360px; overflow-y: auto; }
  #log .stage { color: #2a7ae2; font-weight: 600; }
  #log .tool { color: #2e8b57; }
  #log .err { color: #c0392b; }
  #result { border: 1px solid rgba(127,127,127,0.3); border-radius: 6px; padding: 1rem; margin-top: 1rem; display: none; }
  #result h2 { margin-top: 0; font-size: 1.1rem; }
</style>
</head>
<body>
<h1>WebPilot &mdash; Browser Automation Agent</h1>
<p class="hint">Describe your automation task and optionally include a URL, e.g.
<code>give the definition of pandas:https://pandas.pydata.org/</code></p>

<form id="form">
  <input type="text" id="query" placeholder="Automation query" autocomplete="off">
  <button type="submit" id="run">Run Automation</button>
</form>

<div id="log"></div>
<div id="result"></div>

<script>
const form = document.getElementById('form');
const queryInput = document.getElementById('query');
const runButton = document.getElementById('run');
const log = document.getElementById('log');
const resultBox = document.getElementById('result');

function append(text, cls) {
  const line = document.createElement('div');
  if (cls) line.className = cls;
  line.textContent = text;
  log.appendChild(line);
  log.scrollTop = log.scrollHeight;
}

function showResult(run) {
  resultBox.style.display = 'block';
  if (run.status === 'failed') {
    resultBox.innerHTML = '<h2>Run failed</h2><p>' + escapeHTML(run.error || 'unknown error') + '</p>';
    return;
  }
  const resp = run.result.response;
  resultBox.innerHTML = '<h2>Result</h2>' +
    '<p><strong>Summary:</strong> ' + escapeHTML(resp.summary) + '</p>' +
    '<p><strong>Details:</strong> ' + escapeHTML(resp.details) + '</p>' +
    '<p><strong>Recommendations:</strong> ' + escapeHTML(resp.recommendations || 'No additional recommendations at this time.') + '</p>';
}

function escapeHTML(s) {
  const div = document.createElement('div');
  div.textContent = s;
  return div.innerHTML;
}

function handleEvent(ev) {
  switch (ev.type) {
    case 'stage_start': append('▶ stage: ' + ev.stage, 'stage'); break;
    case 'stage_end': append('✔ stage done: ' + ev.stage, 'stage'); break;
    case 'tool_call': append('→ ' + ev.tool_name, 'tool'); break;
    case 'tool_result': append('← ' + ev.tool_name + ' ok', 'tool'); break;
    case 'tool_result_error': append('← ' + ev.tool_name + ' error: ' + ev.error, 'err'); break;
    case 'error': append('error: ' + ev.error, 'err'); break;
    case 'run_finished': showResult(ev.run); runButton.disabled = false; break;
  }
}

form.addEventListener('submit', async (e) => {
  e.preventDefault();
  const query = queryInput.value.trim();
  if (!query) return;

  runButton.disabled = true;
  log.textContent = '';
  resultBox.style.display = 'none';
  append('starting run...');

  try {
    const res = await fetch('/api/runs', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({query})
    });
    if (!res.ok) {
      const body = await res.json();
      throw new Error(body.error || res.statusText);
    }
    const run = await res.json();

    const proto = location.protocol === 'https:' ? 'wss' : 'ws';
    const ws = new WebSocket(proto + '://' + location.host + '/api/runs/' + run.id + '/events');
    ws.onmessage = (msg) => handleEvent(JSON.parse(msg.data));
    ws.onerror = () => { append('stream error', 'err'); runButton.disabled = false; };
  } catch (err) {
    append('failed to start run: ' + err.message, 'err');
    runButton.disabled = false;
  }
});
</script>
</body>
</html>
`
