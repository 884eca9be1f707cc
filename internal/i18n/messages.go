package i18n

// Message keys used across the dispatcher.
const (
	KeyHelp                   = "help"
	KeyAttachmentsUnsupported = "attachments_unsupported"
	KeyLanguageChanged        = "language_changed"
	KeyLanguageUnknown        = "language_unknown"
	KeyLanguageChangeFailed   = "language_change_failed"
)

// messages maps key → locale → template. Mutated only by LoadOverrides during
// startup, before any request is served.
var messages = map[string]map[string]string{
	KeyHelp: {
		"en": "Hi! Send me any text and I will translate it for you.\n" +
			"Commands:\n" +
			"  --help — show this message\n" +
			"  --language <code> — change your translation language (e.g. --language fr)",
		"es": "¡Hola! Envíame cualquier texto y lo traduciré para ti.\n" +
			"Comandos:\n" +
			"  --help — mostrar este mensaje\n" +
			"  --language <código> — cambiar tu idioma de traducción (p. ej. --language fr)",
		"fr": "Bonjour ! Envoyez-moi un texte et je le traduirai pour vous.\n" +
			"Commandes :\n" +
			"  --help — afficher ce message\n" +
			"  --language <code> — changer votre langue de traduction (ex. --language fr)",
		"de": "Hallo! Schick mir einen Text und ich übersetze ihn für dich.\n" +
			"Befehle:\n" +
			"  --help — diese Nachricht anzeigen\n" +
			"  --language <code> — Übersetzungssprache ändern (z. B. --language fr)",
		"pt": "Olá! Envie-me qualquer texto e eu o traduzirei para você.\n" +
			"Comandos:\n" +
			"  --help — mostrar esta mensagem\n" +
			"  --language <código> — mudar seu idioma de tradução (ex. --language fr)",
		"vi": "Xin chào! Gửi cho tôi bất kỳ văn bản nào và tôi sẽ dịch giúp bạn.\n" +
			"Lệnh:\n" +
			"  --help — hiển thị tin nhắn này\n" +
			"  --language <mã> — đổi ngôn ngữ dịch (ví dụ --language fr)",
	},
	KeyAttachmentsUnsupported: {
		"en": "Sorry, I can only translate text. Attachments are not supported.",
		"es": "Lo siento, solo puedo traducir texto. No se admiten archivos adjuntos.",
		"fr": "Désolé, je ne peux traduire que du texte. Les pièces jointes ne sont pas prises en charge.",
		"de": "Entschuldigung, ich kann nur Text übersetzen. Anhänge werden nicht unterstützt.",
		"pt": "Desculpe, só posso traduzir texto. Anexos não são suportados.",
		"vi": "Xin lỗi, tôi chỉ có thể dịch văn bản. Tệp đính kèm không được hỗ trợ.",
	},
	KeyLanguageChanged: {
		"en": "Done! I will now translate your messages into %s.",
		"es": "¡Listo! Ahora traduciré tus mensajes al %s.",
		"fr": "C'est fait ! Je traduirai désormais vos messages en %s.",
		"de": "Erledigt! Ich übersetze deine Nachrichten jetzt auf %s.",
		"pt": "Pronto! Agora vou traduzir suas mensagens para %s.",
		"vi": "Xong! Tôi sẽ dịch tin nhắn của bạn sang %s.",
	},
	KeyLanguageUnknown: {
		"en": "I don't know the language \"%s\". Send --help to see how to pick a supported one.",
		"es": "No conozco el idioma \"%s\". Envía --help para ver cómo elegir uno compatible.",
		"fr": "Je ne connais pas la langue « %s ». Envoyez --help pour choisir une langue prise en charge.",
		"de": "Die Sprache \"%s\" kenne ich nicht. Sende --help, um eine unterstützte Sprache zu wählen.",
		"pt": "Não conheço o idioma \"%s\". Envie --help para ver como escolher um compatível.",
		"vi": "Tôi không biết ngôn ngữ \"%s\". Gửi --help để xem cách chọn ngôn ngữ được hỗ trợ.",
	},
	KeyLanguageChangeFailed: {
		"en": "Something went wrong while changing your language. Please try again later.",
		"es": "Algo salió mal al cambiar tu idioma. Inténtalo de nuevo más tarde.",
		"fr": "Une erreur s'est produite lors du changement de langue. Veuillez réessayer plus tard.",
		"de": "Beim Ändern deiner Sprache ist etwas schiefgelaufen. Bitte versuche es später erneut.",
		"pt": "Algo deu errado ao mudar seu idioma. Tente novamente mais tarde.",
		"vi": "Đã xảy ra lỗi khi đổi ngôn ngữ của bạn. Vui lòng thử lại sau.",
	},
}
