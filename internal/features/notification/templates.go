package notification

import (
	"fmt"
	"strings"
)

type messageTemplate struct {
	Subject string
	Body    string
}

var emailTemplates = map[TemplateType]messageTemplate{
	TemplateComplaintReceived: {
		Subject: "Keluhan {{complaint_number}} telah kami terima",
		Body: `<p>Halo {{customer_name}},</p>
<p>Terima kasih telah menghubungi kami. Keluhan Anda telah kami terima dengan nomor <strong>{{complaint_number}}</strong>.</p>
<p>Anda dapat memantau perkembangan keluhan melalui <a href="{{tracking_url}}">halaman pelacakan</a>.</p>`,
	},
	TemplateStatusUpdate: {
		Subject: "Status keluhan {{complaint_number}}: {{status_label}}",
		Body: `<p>Halo {{customer_name}},</p>
<p>Status keluhan <strong>{{complaint_number}}</strong> saat ini: <span style="color:{{status_color}};font-weight:bold">{{status_label}}</span></p>
<p>{{status_description}}</p>
<p><a href="{{tracking_url}}">Lihat detail keluhan</a></p>`,
	},
	TemplateComplaintAcknowledged: {
		Subject: "Keluhan {{complaint_number}} telah dikonfirmasi",
		Body: `<p>Halo {{customer_name}},</p>
<p>Keluhan <strong>{{complaint_number}}</strong> telah dikonfirmasi oleh tim kami.</p>
<p>Penggantian yang disetujui: <strong>{{replacement_qty}} unit {{replacement_hybrid}}</strong>.</p>
<p><a href="{{tracking_url}}">Lihat detail keluhan</a></p>`,
	},
	TemplateComplaintResolved: {
		Subject: "Keluhan {{complaint_number}} telah selesai",
		Body: `<p>Halo {{customer_name}},</p>
<p>Keluhan <strong>{{complaint_number}}</strong> telah selesai ditangani.</p>
<p>{{resolution_summary}}</p>
<p>Mohon luangkan waktu untuk memberikan penilaian melalui <a href="{{tracking_url}}">halaman pelacakan</a>.</p>`,
	},
	TemplateResponseAdded: {
		Subject: "Tanggapan baru untuk keluhan {{complaint_number}}",
		Body: `<p>Halo {{customer_name}},</p>
<p>Tim kami menambahkan tanggapan pada keluhan <strong>{{complaint_number}}</strong>:</p>
<blockquote>{{message}}</blockquote>
<p><a href="{{tracking_url}}">Balas atau lihat detail</a></p>`,
	},
}

var whatsAppTemplates = map[TemplateType]messageTemplate{
	TemplateComplaintReceived: {
		Body: "Halo {{customer_name}}, keluhan Anda telah kami terima dengan nomor *{{complaint_number}}*. Pantau perkembangannya di {{tracking_url}}",
	},
	TemplateStatusUpdate: {
		Body: "Halo {{customer_name}}, status keluhan *{{complaint_number}}*: *{{status_label}}*. {{status_description}} Detail: {{tracking_url}}",
	},
	TemplateComplaintAcknowledged: {
		Body: "Halo {{customer_name}}, keluhan *{{complaint_number}}* telah dikonfirmasi. Penggantian: {{replacement_qty}} unit {{replacement_hybrid}}. Detail: {{tracking_url}}",
	},
	TemplateComplaintResolved: {
		Body: "Halo {{customer_name}}, keluhan *{{complaint_number}}* telah selesai. {{resolution_summary}} Beri penilaian Anda di {{tracking_url}}",
	},
	TemplateResponseAdded: {
		Body: "Halo {{customer_name}}, ada tanggapan baru untuk keluhan *{{complaint_number}}*: {{message}}",
	},
}

// Render fills the channel template with the message variables
func Render(msg Message) (string, string, error) {
	var templates map[TemplateType]messageTemplate
	switch msg.Channel {
	case ChannelEmail:
		templates = emailTemplates
	case ChannelWhatsApp:
		templates = whatsAppTemplates
	default:
		return "", "", fmt.Errorf("unknown channel %q", msg.Channel)
	}

	tmpl, ok := templates[msg.Template]
	if !ok {
		return "", "", fmt.Errorf("no %s template for %q", msg.Channel, msg.Template)
	}

	return replacePlaceholders(tmpl.Subject, msg.Variables), replacePlaceholders(tmpl.Body, msg.Variables), nil
}

func replacePlaceholders(text string, vars map[string]string) string {
	for key, value := range vars {
		placeholder := fmt.Sprintf("{{%s}}", key)
		text = strings.ReplaceAll(text, placeholder, value)
	}
	return text
}
