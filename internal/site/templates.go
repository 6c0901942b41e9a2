package site

// layoutTemplate wraps every full page. Pages define "title" and "content".
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{template "title" .}} | {{.SiteName}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <header class="top-bar">
    <a href="/" class="brand">{{.SiteName}}</a>
    <nav class="top-links">
      <a href="/">Home</a>
      <a href="/about">About</a>
      <a href="/admin/messages">Messages</a>
      <a href="/admin/edit/featured-video">Edit content</a>
    </nav>
  </header>
  {{with .Alert}}<div class="alert alert-{{.Kind}}" role="alert">{{.Message}}</div>{{end}}
  <main class="content">
    {{template "content" .}}
  </main>
  {{with .Sidebar}}{{template "sidebar" .}}{{end}}
  <script src="/static/site.js"></script>
</body>
</html>{{end}}

{{define "sidebar"}}<aside class="sidebar" data-sidebar="{{.Name}}">
  {{range .Items}}{{if and .Href (not .Present)}}<a class="sidebar-item" href="{{.Href}}"><span>{{.Label}}</span></a>
  {{else}}<button type="button" class="sidebar-item{{if not .Present}} absent{{end}}" data-scroll-target="{{.ID}}"><span>{{.Label}}</span></button>
  {{end}}{{end}}
</aside>{{end}}

{{define "retry"}}{{if .Retryable}}<p class="state-retry"><a href="">Try again</a></p>{{end}}{{end}}

{{define "state"}}{{if .Failed}}<p class="state-error">Error: {{.Err.Message}}</p>{{template "retry" .Err}}{{else if not .Loaded}}<p class="state-loading">Loading...</p>{{end}}{{end}}`

// sectionsTemplate renders one home page section from its fetch state.
// The outer element's id is the section anchor so live refresh can swap it.
const sectionsTemplate = `{{define "section-featured-video"}}<section id="featured-video" data-section="featured-video" class="section">
  {{template "state" .}}{{with .Data}}
  <div class="featured-video" style="background-color: {{color .Colors.BgColor}}; color: {{color .Colors.TextColor}}">
    <div class="featured-text">
      <h2>{{.Title}}</h2>
      <div class="description">{{markdown .Description}}</div>
      <div class="buttons">
        {{if .Button1.Text}}<a class="button" href="{{.Button1.Link}}">{{.Button1.Text}}</a>{{end}}
        {{if .Button2.Text}}<a class="button secondary" href="{{.Button2.Link}}">{{.Button2.Text}}</a>{{end}}
      </div>
    </div>
    {{if .VideoSrc}}<video class="featured-media" src="{{.VideoSrc}}" autoplay muted loop playsinline></video>{{end}}
  </div>{{end}}
</section>{{end}}

{{define "section-grid-cards"}}<section id="grid-cards" data-section="grid-cards" class="section">
  {{template "state" .}}{{with .Data}}
  <div class="grid-cards" style="background-color: {{color .BgColor}}; color: {{color .TextColor}}">
    <h2>{{.Title}}</h2>
    <p class="subtitle">{{.Subtitle}}</p>
    <div class="cards">
      {{range .Cards}}<div class="card">
        <div class="card-front">{{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}<h3>{{.Title}}</h3></div>
        <div class="card-back" style="background-color: {{color .FlipBgColor}}; color: {{color .FlipTextColor}}">{{markdown .Description}}</div>
      </div>{{end}}
    </div>
  </div>{{end}}
</section>{{end}}

{{define "section-carousel"}}<section id="carousel" data-section="carousel" class="section">
  {{template "state" .}}{{with .Data}}
  <ul class="slides">
    {{range $i, $img := .Images}}<li class="slide" data-index="{{$i}}"><img src="{{$img}}" alt="Slide {{inc $i}}"></li>
    {{end}}
  </ul>{{end}}
</section>{{end}}

{{define "section-location"}}<section id="location" data-section="location" class="section">
  {{template "state" .}}{{with .Data}}
  <div class="location" style="background-color: {{color .BgColor}}; color: {{color .TextColor}}">
    <h2>{{.Title}}</h2>
    <p class="subtitle">{{.Subtitle}}</p>
    <div class="description">{{markdown .Description}}</div>
    <dl>
      <dt>Address</dt><dd>{{.Address}}</dd>
      <dt>Phone</dt><dd>{{.Phone}}</dd>
      <dt>Email</dt><dd>{{.Email}}</dd>
      <dt>Working hours</dt><dd>{{.WorkingHours}}</dd>
    </dl>
    {{if .MapSrc}}<iframe class="map" src="{{.MapSrc}}" loading="lazy" title="Map"></iframe>{{end}}
  </div>{{end}}
</section>{{end}}

{{define "section-services"}}<section id="services" data-section="services" class="section">
  {{template "state" .}}{{with .Data}}
  <h2>Services</h2>
  <ul class="services">
    {{range .}}<li id="{{serviceAnchor .}}"><a href="/services/{{.ID}}">{{.Title}}</a></li>
    {{end}}
  </ul>{{end}}
</section>{{end}}`

const homeTemplate = `{{define "title"}}Home{{end}}
{{define "content"}}
<div id="hero">{{template "section-featured-video" .FeaturedVideo}}</div>
<div id="news">{{template "section-grid-cards" .GridCards}}</div>
{{template "section-services" .Services}}
{{template "section-carousel" .Carousel}}
{{template "section-location" .Location}}
{{end}}`

const aboutTemplate = `{{define "title"}}About{{end}}
{{define "content"}}
<section id="about1" class="section">
  {{template "state" .About1}}{{with .About1.Data}}
  <div class="about1" style="background-color: {{color .BgColor}}; color: {{color .TextColor}}">
    <div class="about-images">
      {{if .Image1}}<img src="{{.Image1}}" alt="{{.Title}}">{{end}}
      {{if .Image2}}<img src="{{.Image2}}" alt="">{{end}}
    </div>
    <div class="about-text">
      <h2>{{.Title}}</h2>
      <div class="description">{{markdown .Description}}</div>
      {{if .ButtonLabel}}<a class="button" href="{{.ButtonLink}}">{{.ButtonLabel}}</a>{{end}}
    </div>
  </div>{{end}}
</section>

<section id="about2" class="section">
  {{template "state" .About2}}{{with .About2.Data}}
  <div class="about2" style="background-color: {{color .BgColor}}; color: {{color .TextColor}}">
    <h2>{{.Title}}</h2>
    <div class="description">{{markdown .Description}}</div>
    <ul class="key-points">
      {{range .KeyPoints}}<li><span class="icon">{{.Icon}}</span><h3>{{.Title}}</h3><p>{{.Description}}</p></li>
      {{end}}
    </ul>
    {{if .ButtonLabel}}<a class="button" href="{{.ButtonLink}}">{{.ButtonLabel}}</a>{{end}}
  </div>{{end}}
</section>

<section id="values" class="section">
  {{template "state" .Values}}{{with .Values.Data}}
  <div class="core-values" style="background-color: {{color (index .Colors "white")}}; color: {{color (index .Colors "darkGray")}}">
    <p class="subtitle">{{.Subtitle}}</p>
    <h2>{{.Title}}</h2>
    <div class="cards">
      {{range .Values}}<div class="value-card" style="border-top-color: {{color .Color}}">
        <span class="icon">{{.Icon}}</span>
        <h3>{{.Title}}</h3>
        <p>{{.Description}}</p>
      </div>{{end}}
    </div>
  </div>{{end}}
</section>

<section id="message" class="section">
  {{template "state" .Message}}{{with .Message.Data}}
  <div class="chairman">
    {{if .Image}}<img class="portrait" src="{{.Image}}" alt="{{.Name}}">{{end}}
    <dl class="stats">
      {{with .YearsOfExperience}}<div><dt>Years of experience</dt><dd>{{.}}</dd></div>{{end}}
      {{with .ProjectsCompleted}}<div><dt>Projects completed</dt><dd>{{.}}</dd></div>{{end}}
      {{with .CompanyEstablished}}<div><dt>Established</dt><dd>{{.}}</dd></div>{{end}}
    </dl>
    <blockquote>{{markdown .Message}}</blockquote>
    <p class="signoff"><strong>{{.Name}}</strong><br>{{.Title}}</p>
    {{if .Signature}}<img class="signature" src="{{.Signature}}" alt="Signature">{{end}}
  </div>{{end}}
</section>

<section id="team" class="section">
  {{template "state" .Team}}{{with .Team.Data}}
  <div class="team" style="background-color: {{color .BgColor}}; color: {{color .TextColor}}">
    <h2>{{.TeamInfo.Headings.Title}}</h2>
    <p class="subtitle">{{.TeamInfo.Headings.Subheading}}</p>
    <div class="cards">
      {{range .TeamInfo.Members}}<div class="member">
        {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
        <h3>{{.Name}}</h3>
        <p class="position">{{.Position}}</p>
        {{with .Expertise}}<p>{{.}}</p>{{end}}
        {{with .Years}}<p class="years">{{.}} years</p>{{end}}
      </div>{{end}}
    </div>
  </div>{{end}}
</section>
{{end}}`

const serviceTemplate = `{{define "title"}}{{with .Service}}{{.Title}}{{else}}Service not found{{end}}{{end}}
{{define "content"}}
{{if .Services.Failed}}<p class="state-error">Error: {{.Services.Err.Message}}</p>{{template "retry" .Services.Err}}
{{else if .Service}}{{with .Service}}<article id="{{serviceAnchor .}}" class="service-detail">
  <h1>{{.Title}}</h1>
  <div class="description">{{markdown .Description}}</div>
</article>{{end}}
{{else}}<p class="not-found">Service not found</p>{{end}}
{{end}}`

const messagesTemplate = `{{define "title"}}Contact messages{{end}}
{{define "content"}}
<h1>Contact messages</h1>
{{template "state" .State}}
{{if .State.Loaded}}
<p class="export"><a href="/admin/messages.csv">Download CSV</a></p>
<table class="list">
  <thead><tr><th>Name</th><th>Email</th><th>Message</th><th>Submitted</th></tr></thead>
  <tbody>
  {{range .View.Rows}}<tr><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Message}}</td><td>{{formatTime .SubmittedAt}}</td></tr>
  {{else}}<tr class="empty"><td colspan="4">No messages found.</td></tr>
  {{end}}
  </tbody>
</table>
{{template "pager" .}}
{{end}}
{{end}}`

const responsesTemplate = `{{define "title"}}Form responses{{end}}
{{define "content"}}
<h1>Form responses</h1>
{{template "state" .State}}
{{if .State.Loaded}}
<p class="export"><a href="{{.BasePath}}.csv">Download CSV</a></p>
<table class="list">
  <thead><tr><th>Field</th><th>Value</th><th>Submitted</th></tr></thead>
  <tbody>
  {{range .View.Rows}}<tr><td>{{.FormField.Name}}</td><td>{{if .IsImage}}<a href="{{.Value}}"><img class="thumb" src="{{.Value}}" alt="{{.FormField.Name}}"></a>{{else}}{{.Value}}{{end}}</td><td>{{formatTime .SubmittedAt}}</td></tr>
  {{else}}<tr class="empty"><td colspan="3">No responses found.</td></tr>
  {{end}}
  </tbody>
</table>
{{template "pager" .}}
{{end}}
{{end}}`

const pagerTemplate = `{{define "pager"}}{{if gt .View.TotalPages 1}}<nav class="pager">
  {{if .View.HasPrev}}<a href="{{.BasePath}}?page={{dec .View.Page}}" rel="prev">Previous</a>{{end}}
  {{range .View.Pages}}{{if eq . $.View.Page}}<span class="current">{{.}}</span>{{else}}<a href="{{$.BasePath}}?page={{.}}">{{.}}</a>{{end}}
  {{end}}
  {{if .View.HasNext}}<a href="{{.BasePath}}?page={{inc .View.Page}}" rel="next">Next</a>{{end}}
</nav>{{end}}{{end}}`

const editorTemplate = `{{define "title"}}Edit {{.Section.Title}}{{end}}
{{define "content"}}
<nav class="editor-tabs">{{range .Sections}}<a href="/admin/edit/{{.Key}}"{{if eq .Key $.Section.Key}} class="active"{{end}}>{{.Title}}</a>{{end}}</nav>
<h1>Edit {{.Section.Title}}</h1>
{{with .Err}}<p class="state-error">Error: {{.Message}}</p>{{template "retry" .}}{{end}}
{{if .Loaded}}
<form method="post" action="/admin/edit/{{.Section.Key}}" class="editor">
  <input type="hidden" name="doc" value="{{.DocJSON}}">
  {{range .Groups}}<fieldset>
    <legend>{{.Title}}</legend>
    {{range .Fields}}<label>{{.Label}}
      {{if eq .Kind "textarea"}}<textarea name="{{.Path}}" rows="4">{{.Value}}</textarea>
      {{else}}<input type="text" name="{{.Path}}" value="{{.Value}}">{{if eq .Kind "color"}}<input type="color" class="picker" data-mirror="{{.Path}}" value="{{pickerColor .Value}}" aria-label="Pick {{.Label}}">{{end}}{{end}}
    </label>
    {{end}}
    {{if .RemoveAction}}<button type="submit" name="action" value="{{.RemoveAction}}:{{.Index}}" class="danger" formnovalidate>Remove</button>{{end}}
  </fieldset>
  {{end}}
  {{if eq .Section.Key "grid-cards"}}<button type="submit" name="action" value="add_card">Add Card</button>{{end}}
  {{if eq .Section.Key "carousel"}}<label>New image link <input type="text" name="new_image" value=""></label>
  <button type="submit" name="action" value="add_image">Add Image</button>{{end}}
  <div class="editor-actions"><button type="submit" name="action" value="save" class="primary">Save</button></div>
</form>
{{end}}
{{end}}`

const cssContent = `:root { --accent: #e6b800; --ink: #1f2937; --muted: #6b7280; --bg: #ffffff; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; color: var(--ink); background: var(--bg); }
.top-bar { display: flex; justify-content: space-between; align-items: center; padding: 1rem 2rem; border-bottom: 1px solid #e5e7eb; }
.brand { font-weight: 700; color: var(--ink); text-decoration: none; }
.top-links a { margin-left: 1rem; color: var(--muted); text-decoration: none; }
.content { max-width: 1100px; margin: 0 auto; padding: 2rem; }
.section { padding: 2rem 0; }
.alert { margin: 1rem auto; max-width: 1100px; padding: .75rem 1rem; border-radius: 6px; }
.alert-success { background: #ecfdf5; color: #065f46; }
.alert-error { background: #fef2f2; color: #991b1b; }
.state-error { color: #b91c1c; }
.state-loading { color: var(--muted); }
.state-retry a { color: var(--muted); }
.featured-video { display: flex; gap: 2rem; padding: 2rem; border-radius: 8px; }
.featured-media { max-width: 50%; border-radius: 8px; }
.button { display: inline-block; padding: .5rem 1rem; background: var(--accent); color: #000; border-radius: 6px; text-decoration: none; margin-right: .5rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
.card { position: relative; min-height: 220px; border-radius: 8px; overflow: hidden; }
.card img { width: 100%; height: 160px; object-fit: cover; }
.card-back { position: absolute; inset: 0; padding: 1rem; opacity: 0; transition: opacity .3s; }
.card:hover .card-back { opacity: 1; }
.slides { list-style: none; display: flex; gap: 1rem; overflow-x: auto; padding: 0; scroll-snap-type: x mandatory; }
.slide { flex: 0 0 100%; scroll-snap-align: start; }
.slide img { width: 100%; max-height: 480px; object-fit: cover; }
.map { width: 100%; height: 320px; border: 0; }
.about1 { display: flex; gap: 2rem; padding: 2rem; border-radius: 8px; }
.about-images img { max-width: 100%; border-radius: 8px; margin-bottom: 1rem; }
.key-points { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
.value-card, .member { padding: 1rem; border-radius: 8px; border-top: 4px solid var(--accent); background: #f9fafb; }
.member img, .portrait { width: 100%; max-height: 240px; object-fit: cover; border-radius: 8px; }
.stats { display: flex; gap: 2rem; }
.stats dd { margin: 0; font-size: 1.5rem; font-weight: 700; }
.signature { max-height: 60px; }
.sidebar { position: fixed; top: 6rem; right: 1rem; display: flex; flex-direction: column; gap: .75rem; }
.sidebar-item { display: flex; align-items: center; padding: .5rem .75rem; border: 0; border-radius: 999px; background: var(--accent); color: #000; cursor: pointer; text-decoration: none; font-size: .85rem; }
.sidebar-item.absent { opacity: .5; }
table.list { width: 100%; border-collapse: collapse; }
table.list th, table.list td { text-align: left; padding: .5rem; border-bottom: 1px solid #e5e7eb; vertical-align: top; }
tr.empty td { text-align: center; color: var(--muted); }
.thumb { max-height: 64px; }
.pager { display: flex; gap: .5rem; margin-top: 1rem; }
.pager .current { font-weight: 700; }
.editor fieldset { margin-bottom: 1rem; border: 1px solid #e5e7eb; border-radius: 6px; }
.editor label { display: block; margin: .5rem 0; }
.editor input[type=text], .editor textarea { width: 100%; padding: .4rem; }
.editor input.picker { width: 3rem; height: 2rem; padding: 0; margin-top: .25rem; }
.editor-tabs a { margin-right: 1rem; }
.editor-tabs a.active { font-weight: 700; }
button.primary { background: var(--accent); border: 0; padding: .5rem 1.25rem; border-radius: 6px; }
button.danger { background: #fee2e2; color: #991b1b; border: 0; padding: .3rem .8rem; border-radius: 6px; }
`

const jsContent = `(function() {
  // Sidebar: scroll to the target section, or do nothing if it is absent.
  document.querySelectorAll('[data-scroll-target]').forEach(function(btn) {
    btn.addEventListener('click', function() {
      var el = document.getElementById(btn.getAttribute('data-scroll-target'));
      if (el) {
        el.scrollIntoView({ behavior: 'smooth' });
      }
    });
  });

  // Colour pickers carry no name; they only write into the text field.
  document.querySelectorAll('input[data-mirror]').forEach(function(picker) {
    picker.addEventListener('input', function() {
      var target = picker.form && picker.form.elements[picker.getAttribute('data-mirror')];
      if (target) target.value = picker.value;
    });
  });

  // Live refresh: swap a section in place when an editor saves it.
  if (!('WebSocket' in window) || !document.querySelector('[data-section]')) return;

  function connect(delay) {
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(proto + '//' + location.host + '/ws/content');
    ws.onmessage = function(ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (e) { return; }
      if (msg.type !== 'content_updated') return;
      var el = document.querySelector('[data-section="' + msg.section + '"]');
      if (!el) return;
      fetch('/fragments/' + encodeURIComponent(msg.section))
        .then(function(res) { return res.ok ? res.text() : null; })
        .then(function(html) { if (html !== null) el.outerHTML = html; });
    };
    ws.onclose = function() {
      setTimeout(function() { connect(Math.min(delay * 2, 30000)); }, delay);
    };
  }
  connect(1000);
})();
`
