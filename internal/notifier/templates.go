package notifier

import (
	htmltemplate "html/template"
	"text/template"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// templateSet шаблоны одного типа события
type templateSet struct {
	subject  *template.Template
	text     *template.Template
	html     *htmltemplate.Template
	whatsapp *template.Template
	admin    bool // копия администратору
}

type rawTemplates struct {
	subject, text, html, whatsapp string
	admin                         bool
}

const htmlLayoutStart = `<div style="font-family:Arial,sans-serif;max-width:560px;margin:0 auto">` +
	`<h2 style="color:#ff6f3c">{{.Venue}}</h2>`

const htmlLayoutEnd = `<p style="color:#888;font-size:12px">{{.Venue}}</p></div>`

var raw = map[domain.EventType]rawTemplates{
	domain.EventBookingPending: {
		subject: `Booking {{.Event.Reference}} awaiting payment`,
		text: `Hi {{.Event.Name}},
your booking {{.Event.Reference}} for {{.Event.Date}} ({{.Event.SlotLabel}}), {{.Event.Children}} children, is reserved.
Amount due: {{.Event.Total}}. Complete the payment to confirm it.`,
		html: htmlLayoutStart + `<p>Hi {{.Event.Name}},</p>
<p>Your booking <b>{{.Event.Reference}}</b> for <b>{{.Event.Date}}</b> ({{.Event.SlotLabel}}) is reserved.</p>
<p>Children: {{.Event.Children}}<br>Amount due: {{.Event.Total}}</p>
<p>Complete the payment to confirm it.</p>` + htmlLayoutEnd,
		whatsapp: `{{.Venue}}: booking {{.Event.Reference}} on {{.Event.Date}} {{.Event.SlotLabel}} is waiting for payment of {{.Event.Total}}.`,
	},
	domain.EventBookingConfirmed: {
		subject: `Booking {{.Event.Reference}} confirmed`,
		text: `Hi {{.Event.Name}},
your booking {{.Event.Reference}} is confirmed.
Date: {{.Event.Date}}
Time: {{.Event.SlotLabel}}
Children: {{.Event.Children}}
Total: {{.Event.Total}}
Show the QR code from this email at the entrance.`,
		html: htmlLayoutStart + `<p>Hi {{.Event.Name}},</p>
<p>Your booking <b>{{.Event.Reference}}</b> is confirmed.</p>
<table>
<tr><td>Date</td><td>{{.Event.Date}}</td></tr>
<tr><td>Time</td><td>{{.Event.SlotLabel}}</td></tr>
<tr><td>Children</td><td>{{.Event.Children}}</td></tr>
<tr><td>Total</td><td>{{.Event.Total}}</td></tr>
</table>
{{if .QRContentID}}<p>Show this code at the entrance:</p><img src="cid:{{.QRContentID}}" alt="{{.Event.Reference}}" width="200" height="200">{{end}}` + htmlLayoutEnd,
		whatsapp: `{{.Venue}}: booking {{.Event.Reference}} confirmed for {{.Event.Date}} {{.Event.SlotLabel}}, {{.Event.Children}} children. See you!`,
	},
	domain.EventBookingCancelled: {
		subject: `Booking {{.Event.Reference}} cancelled`,
		text: `Hi {{.Event.Name}},
your booking {{.Event.Reference}} for {{.Event.Date}} ({{.Event.SlotLabel}}) was cancelled.{{with index .Event.Extra "reason"}}
Reason: {{.}}{{end}}`,
		html: htmlLayoutStart + `<p>Hi {{.Event.Name}},</p>
<p>Your booking <b>{{.Event.Reference}}</b> for {{.Event.Date}} ({{.Event.SlotLabel}}) was cancelled.</p>
{{with index .Event.Extra "reason"}}<p>Reason: {{.}}</p>{{end}}` + htmlLayoutEnd,
		whatsapp: `{{.Venue}}: booking {{.Event.Reference}} on {{.Event.Date}} was cancelled.`,
	},
	domain.EventPartyRequested: {
		subject: `Birthday party request {{.Event.Reference}}`,
		text: `Hi {{.Event.Name}},
we received your party request {{.Event.Reference}} for {{.Event.Date}}{{with .Event.SlotLabel}} at {{.}}{{end}}.
Package: {{index .Event.Extra "package"}}
Guests: {{.Event.Children}}
We will contact you to confirm the details.`,
		html: htmlLayoutStart + `<p>Hi {{.Event.Name}},</p>
<p>We received your party request <b>{{.Event.Reference}}</b> for <b>{{.Event.Date}}</b>.</p>
<p>Package: {{index .Event.Extra "package"}}<br>Guests: {{.Event.Children}}</p>
<p>We will contact you to confirm the details.</p>` + htmlLayoutEnd,
		whatsapp: `{{.Venue}}: party request {{.Event.Reference}} for {{.Event.Date}} received. We will contact you soon.`,
		admin:    true,
	},
	domain.EventPartyUpdated: {
		subject: `Birthday party {{.Event.Reference}} is {{index .Event.Extra "status"}}`,
		text: `Hi {{.Event.Name}},
your party {{.Event.Reference}} on {{.Event.Date}} is now {{index .Event.Extra "status"}}.`,
		html: htmlLayoutStart + `<p>Hi {{.Event.Name}},</p>
<p>Your party <b>{{.Event.Reference}}</b> on {{.Event.Date}} is now <b>{{index .Event.Extra "status"}}</b>.</p>` + htmlLayoutEnd,
		whatsapp: `{{.Venue}}: party {{.Event.Reference}} on {{.Event.Date}} is now {{index .Event.Extra "status"}}.`,
	},
	domain.EventEnquiryReceived: {
		subject: `We received your message`,
		text: `Hi {{.Event.Name}},
thanks for contacting us. We will reply shortly.

Your message:
{{index .Event.Extra "message"}}`,
		html: htmlLayoutStart + `<p>Hi {{.Event.Name}},</p>
<p>Thanks for contacting us. We will reply shortly.</p>
<blockquote>{{index .Event.Extra "message"}}</blockquote>` + htmlLayoutEnd,
		admin: true,
	},
}

// loadTemplates компилирует шаблоны один раз при старте
func loadTemplates() (map[domain.EventType]*templateSet, error) {
	sets := make(map[domain.EventType]*templateSet, len(raw))
	for eventType, r := range raw {
		name := string(eventType)
		set := &templateSet{admin: r.admin}

		var err error
		if set.subject, err = template.New(name + ".subject").Parse(r.subject); err != nil {
			return nil, err
		}
		if set.text, err = template.New(name + ".text").Parse(r.text); err != nil {
			return nil, err
		}
		if set.html, err = htmltemplate.New(name + ".html").Parse(r.html); err != nil {
			return nil, err
		}
		if r.whatsapp != "" {
			if set.whatsapp, err = template.New(name + ".whatsapp").Parse(r.whatsapp); err != nil {
				return nil, err
			}
		}
		sets[eventType] = set
	}
	return sets, nil
}
