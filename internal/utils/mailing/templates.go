package mailing

import (
	"bytes"
	"food-tracker/domain"
	"html/template"
)

var expiryAlertTemplate = template.Must(template.New("expiry-alert").Funcs(template.FuncMap{
	"neg": func(n int) int { return -n },
}).Parse(`
<p>Hi {{.Name}},</p>
<p>{{.Alerts.ExpiredCount}} item(s) in your pantry have expired and {{.Alerts.NearExpiryCount}} will expire within three days.</p>
<ul>
{{range .Alerts.Items}}<li>{{.Name}} ({{.Category}}): {{if eq .ExpiryState "EXPIRED"}}expired {{neg .DaysLeft}} day(s) ago{{else}}expires in {{.DaysLeft}} day(s){{end}}</li>
{{end}}</ul>
<p>Consider using or donating them before they go to waste.</p>
`))

var offerNoticeTemplate = template.Must(template.New("offer-notice").Parse(`
<p>Hello {{.Center}},</p>
<p>A new donation offer with {{len .Offer.Items}} item(s) is waiting for you.</p>
<ul>
{{range .Offer.Items}}<li>{{if .FoodName}}{{.FoodName}}{{else}}unknown item{{end}}: {{.Quantity}}</li>
{{end}}</ul>
{{if .Offer.Remarks}}<p>Remarks: {{.Offer.Remarks}}</p>{{end}}
<p>Offer reference: {{.Offer.ID}}</p>
`))

func RenderExpiryAlerts(name string, alerts domain.ExpiryAlertsResponse) (string, error) {
	var buf bytes.Buffer
	err := expiryAlertTemplate.Execute(&buf, struct {
		Name   string
		Alerts domain.ExpiryAlertsResponse
	}{name, alerts})
	return buf.String(), err
}

func RenderOfferNotice(center string, offer *domain.DonationOffer) (string, error) {
	var buf bytes.Buffer
	err := offerNoticeTemplate.Execute(&buf, struct {
		Center string
		Offer  *domain.DonationOffer
	}{center, offer})
	return buf.String(), err
}
