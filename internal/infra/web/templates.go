package web

import "html/template"

// Server-rendered pages. Styling mirrors a plain utility look; every page is
// self-contained so the service ships no static assets.

const pageShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>{{template "title" .}}</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:2rem;background:#fafafa}
.card{max-width:560px;margin:0 auto;border:1px solid #ddd;border-radius:12px;padding:24px;background:#fff}
.ok{color:#057a55} .warn{color:#92400e} .fail{color:#b00020}
label{display:block;margin-top:12px;font-size:14px;color:#444}
input{width:100%;padding:8px;margin-top:4px;border:1px solid #ccc;border-radius:6px;box-sizing:border-box}
.btn{display:inline-block;margin-top:16px;padding:10px 16px;border-radius:8px;border:1px solid #888;background:#f3f4f6;text-decoration:none;cursor:pointer}
table{width:100%;border-collapse:collapse;margin-top:16px}
th,td{text-align:left;padding:8px;border-bottom:1px solid #eee;font-size:14px}
.small{font-size:12px;color:#666}
</style>
</head>
<body><div class="card">{{template "body" .}}</div></body>
</html>`

func mustPage(name, title, body string) *template.Template {
	t := template.Must(template.New(name).Parse(pageShell))
	template.Must(t.New("title").Parse(title))
	template.Must(t.New("body").Parse(body))
	return t
}

var requestFormPage = mustPage("request-form", `Request access`, `
<h1>Request access</h1>
{{if .Error}}<p class="fail">{{.Error}}</p>{{end}}
<form method="post" action="/request-access">
  <label>First name <input name="first_name" value="{{.FirstName}}" required></label>
  <label>Last name <input name="last_name" value="{{.LastName}}" required></label>
  <label>Email <input name="email" type="email" value="{{.Email}}" required></label>
  <label>Contact handle <input name="contact_handle" value="{{.ContactHandle}}" placeholder="@you"></label>
  <button class="btn" type="submit">Submit request</button>
</form>`)

var submittedPage = mustPage("submitted", `Request received`, `
<h1 class="ok">Request received</h1>
<p>Thanks, {{.Name}}. If your request is approved you will receive your
admission code by email.</p>`)

var loginPage = mustPage("login", `Admin login`, `
<h1>Admin login</h1>
{{if .Error}}<p class="fail">{{.Error}}</p>{{end}}
<form method="post" action="/admin/login">
  <label>Username <input name="username" required></label>
  <label>Password <input name="password" type="password" required></label>
  <button class="btn" type="submit">Log in</button>
</form>`)

var adminPage = mustPage("admin", `Access requests`, `
<h1>Access requests</h1>
<p class="small">Signed in as {{.Username}} — <a href="/admin/logout">log out</a></p>
<table>
<tr><th>Guest</th><th>Email</th><th>Handle</th><th>Submitted</th><th>Status</th><th></th></tr>
{{range .Requests}}
<tr>
  <td>{{.DisplayName}}</td>
  <td>{{.Email}}</td>
  <td>{{.ContactHandle}}</td>
  <td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
  <td>{{if .Approved}}<span class="ok">approved</span>{{else}}<span class="warn">pending</span>{{end}}</td>
  <td>{{if not .Approved}}
    <form method="post" action="/admin/approve/{{.ID}}">
      <button class="btn" type="submit">Approve</button>
    </form>
  {{end}}</td>
</tr>
{{end}}
</table>`)

var redeemSuccessPage = mustPage("redeem-success", `Welcome`, `
<h1 class="ok">Welcome in!</h1>
<p><strong>{{.GuestName}}</strong>{{if .ContactHandle}} ({{.ContactHandle}}){{end}}</p>
<p class="small">Admitted at {{.RedeemedAt.Format "15:04:05"}}. This code is now used up.</p>`)

var redeemUsedPage = mustPage("redeem-used", `Code already used`, `
<h1 class="warn">Already used</h1>
<p>This admission code has been used before. Each code works exactly once.</p>`)

var redeemInvalidPage = mustPage("redeem-invalid", `Invalid code`, `
<h1 class="fail">Invalid code</h1>
<p>This admission code is not recognized.</p>`)
