// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

const htmlSource = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}} ({{.Date}})</title>
<script>
MathJax = {
  tex: {
    inlineMath: [['$', '$'], ['\\(', '\\)']],
    displayMath: [['$$', '$$'], ['\\[', '\\]']]
  }
};
</script>
<script type="text/javascript" id="MathJax-script" async src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"></script>
<style>
body { font-family: sans-serif; line-height: 1.6; color: #333; max-width: 1200px; margin: 0 auto; padding: 20px; }
h1, h2, h3 { color: #0056b3; }
h1 { border-bottom: 3px solid #0056b3; padding-bottom: 10px; }
h2 { border-bottom: 2px solid #0056b3; padding-bottom: 5px; margin-top: 40px; }
h3 { border-bottom: 1px solid #ccc; padding-bottom: 3px; }
.paper-meta { color: #666; font-size: 0.9em; margin: 10px 0; }
.keywords { background-color: #e3f2fd; padding: 5px 10px; border-radius: 5px; font-weight: bold; margin: 10px 0; }
.abstract { border-left: 5px solid #eee; padding: 15px 20px; margin: 20px 0; background-color: #f9f9f9; font-style: italic; }
.score-s-plus { color: #b8860b; }
.score-s { color: #c0392b; }
.score-a { color: #27ae60; }
.score-b { color: #2980b9; }
.score-c { color: #7f8c8d; }
table { border-collapse: collapse; width: 100%; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
a { color: #007bff; text-decoration: none; }
a:hover { text-decoration: underline; }
.no-papers { text-align: center; padding: 50px; color: #666; font-size: 1.2em; }
hr { border: none; height: 2px; background-color: #eee; margin: 30px 0; }
</style>
</head>
<body>
<h1>{{.Title}} ({{.Date}})</h1>
{{- if .NoMatches}}
<div class="no-papers">` + EmptyMessage + `</div>
{{- else}}
{{- range .Entries}}
<div class="paper" data-rank-score="{{.RankScore}}">
<h2 class="paper-header">
<a id="{{.Anchor}}" href="#{{.Anchor}}">■</a>
<a class="paper-title" href="{{.URL}}" target="_blank">{{math .Title}}</a>
<span class="score {{.TierClass}}">{{.TierEmoji}} Score: {{.RankScore}} ({{.TierLabel}})</span>
</h2>
<div class="keywords">Keywords: {{.Keywords}}</div>
{{- if .Published}}
<div class="paper-meta">Published: {{.Published}}</div>
{{- end}}
{{- if .Authors}}
<h3>Authors (Semantic Scholar)</h3>
<table class="authors">
<tr><th>Author</th><th>h-index</th><th>Citations</th><th>Papers</th></tr>
{{- range .Authors}}
<tr><td><a href="{{.ProfileURL}}" target="_blank">{{.Name}}</a></td><td>{{.HIndex}}</td><td>{{thousands .CitationCount}}</td><td>{{.PaperCount}}</td></tr>
{{- end}}
</table>
{{- end}}
<h3>Abstract</h3>
<div class="abstract">{{math .Summary}}</div>
</div>
<hr>
{{- end}}
{{- end}}
</body>
</html>
`

const markdownSource = `# {{.Title}} ({{.Date}})
{{if .NoMatches}}
_` + EmptyMessage + `_
{{else}}
{{- range $i, $e := .Entries}}
## {{inc $i}}. [{{line (math $e.Title)}}]({{$e.URL}})

<a id="{{$e.Anchor}}"></a>{{$e.TierEmoji}} **Score: {{$e.RankScore}}** ({{$e.TierLabel}})

**Keywords:** {{$e.Keywords}}
{{- if $e.Published}}

**Published:** {{$e.Published}}
{{- end}}
{{if $e.Authors}}
| Author | h-index | Citations | Papers |
|---|---:|---:|---:|
{{- range $e.Authors}}
| [{{cell .Name}}]({{.ProfileURL}}) | {{.HIndex}} | {{thousands .CitationCount}} | {{.PaperCount}} |
{{- end}}
{{end}}
> {{line (math $e.Summary)}}

---
{{end}}
{{- end}}`
