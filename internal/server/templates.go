package server

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>생성된 블로그 목록</title></head>
<body>
<h1>생성된 블로그 목록</h1>
{{if .Posts}}
<ul>
{{range .Posts}}
  <li>
    <a href="/posts/{{.Filename}}">{{.Topic}}</a>
    <small>{{.Category}} · {{.CreatedAt}}</small>
  </li>
{{end}}
</ul>
{{else}}
<p>생성된 블로그가 없습니다.</p>
{{end}}
</body>
</html>
`))

var postTemplate = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>{{with .Post.Topic}}{{.}}{{else}}{{.Post.Filename}}{{end}}</title></head>
<body>
<p><a href="/">목록</a></p>
{{with .Post.Topic}}<h1>{{.}}</h1>{{end}}
<dl>
  {{with .Post.Category}}<dt>카테고리</dt><dd>{{.}}</dd>{{end}}
  {{with .Post.Tags}}<dt>태그</dt><dd>{{range $i, $t := .}}{{if $i}}, {{end}}{{$t}}{{end}}</dd>{{end}}
  {{with .Post.CreatedAt}}<dt>생성일</dt><dd>{{.}}</dd>{{end}}
</dl>
<article>
{{.Body}}
</article>
</body>
</html>
`))
