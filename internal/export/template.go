package export

import (
	"html/template"
	"regexp"
)

// optionPrefix matches a label the model already wrote, like "A." or "b)".
var optionPrefix = regexp.MustCompile(`^[a-dA-D][.)]\s*`)

var docTemplate = template.Must(template.New("doc").Parse(
	`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns:m='http://schemas.microsoft.com/office/2004/12/omml' xmlns='http://www.w3.org/TR/REC-html40'>
<head>
<meta charset='utf-8'>
<title>{{.Title}}</title>
<style>
body { font-family: 'Times New Roman', serif; font-size: 12pt; }
p { margin: 6px 0; }
.question { margin-bottom: 12px; }
.options { margin-left: 20px; }
.section-title { font-weight: bold; font-size: 14pt; margin-top: 20px; margin-bottom: 10px; text-transform: uppercase; }
</style>
</head>
<body>
<h1 style="text-align: center;">{{.Title}}</h1>
<p style="text-align: center;"><b>Môn:</b> Vật lý - <b>Chương trình GDPT 2018</b></p>
<hr/>
<div class="section-title">PHẦN 1: NỘI DUNG ĐỀ THI</div>
{{range .Questions -}}
<div class="question">
<p><b>Câu {{.Number}}:</b> {{.Content}}</p>
<div class="options">
{{- if eq .Kind "mc"}}{{range .Options}}
<p>{{.Label}}. {{.Text}}</p>
{{- end}}
{{- else if eq .Kind "tf"}}{{range .Options}}
<p>{{.Label}}) {{.Text}}</p>
{{- end}}
<p style="margin-top: 5px;"><b>*Đáp án: {{.Answer}}</b></p>
{{- else if eq .Kind "sa"}}
<p style="margin-top: 5px;"><b>*Đáp án: {{.Answer}}</b></p>
{{- else}}
<p>...</p>
{{- end}}
</div></div>
{{end -}}
<br clear=all style='mso-special-character:line-break;page-break-before:always'>
<div class="section-title">PHẦN 2: HƯỚNG DẪN GIẢI CHI TIẾT</div>
{{range .Questions -}}
<p><b>Câu {{.Number}}:</b></p>
{{- if ne .Kind "other"}}
<p>Đáp án: <b>{{.Answer}}</b></p>
{{- end}}
<p><i>Lời giải:</i> {{.Explanation}}</p>
<hr style="border: 0; border-top: 1px dashed #ccc;"/>
{{end -}}
</body></html>
`))
