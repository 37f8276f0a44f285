package mail

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Subjects for donor notices.
const (
	SubjectFiscal   = "🎁 Votre reçu fiscal SOS Palestine"
	SubjectThankYou = "💖 Merci pour votre don à SOS Palestine"
	SubjectWelcome  = "Vous êtes maintenant abonné(e) !"
)

// StaffReceiptSubject is the subject of the internal copy of a new receipt.
func StaffReceiptSubject(name, surname string) string {
	return fmt.Sprintf("🧾 Nouveau reçu fiscal émis - %s %s", name, surname)
}

// ContactSubject is the subject of a relayed contact-form message.
func ContactSubject(email string) string {
	return fmt.Sprintf("📨 Nouveau message via le formulaire de contact (%s)", email)
}

// DonorEmailData feeds the donor and staff notice bodies.
type DonorEmailData struct {
	Name          string
	Surname       string
	Amount        string
	ReceiptNumber *int
}

var donorTmpl = template.Must(template.New("donor").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 650px; margin: auto; padding: 30px; background-color: #fffbe7; border-radius: 8px; line-height: 1.6; color: #333;">
  <p>Salam alaykoum <strong>{{.Name}} {{.Surname}}</strong>,</p>
  <p>Au nom de toute l'équipe de l'Association <strong>SOS Humanistes</strong>, je tiens à vous exprimer notre profonde gratitude pour votre généreux don.</p>
  <p><strong>Montant du don :</strong> {{.Amount}} €<br/>
  {{if .ReceiptNumber}}<strong>ID de transaction :</strong> {{.ReceiptNumber}}<br/>{{end}}
  </p>
  <p>Grâce à votre don, nous pourrons fournir une aide médicale, de la nourriture, de l'eau potable et d'autres fournitures essentielles aux personnes touchées par le conflit en Palestine.</p>
  <p>Encore une fois, nous vous remercions de tout cœur pour votre soutien.</p>
  <p>— L'équipe de l'Association SOS Humanistes</p>
  <hr style="margin: 20px 0;" />
  <p style="font-size: 14px;">
    ✉️ Email : <a href="mailto:contact@sospalestine.fr">contact@sospalestine.fr</a><br/>
    🌐 Site : <a href="https://sospalestine.fr">https://sospalestine.fr</a>
  </p>
</div>
`))

var staffTmpl = template.Must(template.New("staff").Parse(`
<p>Un nouveau reçu fiscal a été généré pour un donateur :</p>
<ul>
  <li><strong>Nom :</strong> {{.Name}} {{.Surname}}</li>
  <li><strong>Montant :</strong> {{.Amount}} €</li>
  <li><strong>ID de reçu :</strong> {{if .ReceiptNumber}}{{.ReceiptNumber}}{{else}}N/A{{end}}</li>
</ul>
<p>Le reçu est joint en pièce jointe.</p>
`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: auto; border: 1px solid #eaeaea; border-radius: 10px; background-color: #f9f9f9;">
  <h2 style="color: #2e7d32;">Bienvenue chez SOS Palestine !</h2>
  <p style="font-size: 16px; color: #333;">
    Merci de vous être abonné à nos actualités. Vous faites désormais partie d'une communauté mondiale unie pour la justice et l'humanité.
  </p>
  <p style="font-size: 15px; color: #555;">
    Nous vous tiendrons informé(e) de nos dernières campagnes, projets et de l'impact concret de votre soutien sur le terrain.
  </p>
  <hr style="margin: 20px 0;" />
  <p style="font-size: 14px; color: #888;">– L'équipe SOS Palestine</p>
</div>
`))

var subscriptionNoticeTmpl = template.Must(template.New("subnotice").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px; margin: auto; border: 1px solid #e0e0e0; border-radius: 10px; background-color: #fffbe6;">
  <h3 style="color: #d84315;">Nouvelle inscription à la newsletter</h3>
  <p style="font-size: 16px; color: #333;">Un nouvel utilisateur vient de s'abonner à la liste de diffusion.</p>
  <table style="margin-top: 10px; font-size: 15px; color: #555;">
    <tr><td><strong>Email :</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Date d'abonnement :</strong></td><td>{{.When}}</td></tr>
  </table>
</div>
`))

var contactTmpl = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f4f4f4; color: #333;">
  <div style="max-width: 600px; margin: auto; background: #fff; border-radius: 8px;">
    <div style="background-color: #4CAF50; color: white; padding: 16px 20px; font-size: 18px;">Nouveau message reçu</div>
    <div style="padding: 20px;">
      <p><strong>Email de l'expéditeur :</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
      <p style="margin: 20px 0 5px;"><strong>Message :</strong></p>
      <div style="background-color: #f9f9f9; padding: 15px; border-left: 4px solid #4CAF50;">{{.Message}}</div>
    </div>
  </div>
</div>
`))

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", t.Name(), err)
	}
	return sb.String(), nil
}

// DonorBody renders the donor notice; the transaction line appears only
// when a receipt number was issued.
func DonorBody(d DonorEmailData) (string, error) {
	return render(donorTmpl, d)
}

// StaffBody renders the internal new-receipt notice.
func StaffBody(d DonorEmailData) (string, error) {
	return render(staffTmpl, d)
}

// WelcomeBody renders the subscription confirmation sent to the subscriber.
func WelcomeBody() (string, error) {
	return render(welcomeTmpl, nil)
}

// SubscriptionNoticeBody renders the internal new-subscriber notice.
func SubscriptionNoticeBody(email string, when time.Time) (string, error) {
	return render(subscriptionNoticeTmpl, struct {
		Email string
		When  string
	}{Email: email, When: when.Format("02/01/2006 15:04")})
}

// ContactBody renders a relayed contact-form message. The message text is
// HTML-escaped and newlines become line breaks.
func ContactBody(email, message string) (string, error) {
	escaped := template.HTMLEscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\n", "<br/>")
	return render(contactTmpl, struct {
		Email   string
		Message template.HTML
	}{Email: email, Message: template.HTML(escaped)})
}
