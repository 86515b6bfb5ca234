package handlers

// Client-facing messages. Forms display them as is.
const (
	MsgInvalidContentType = "Content-Type invalide."
	MsgInvalidJSON        = "JSON invalide."
	MsgMissingFields      = "Tous les champs sont requis."
	MsgInvalidEmail       = "Email invalide."
	MsgSendFailed         = "Échec de l'envoi."
	MsgInternal           = "Erreur interne."
	MsgNotFound           = "Introuvable."
	MsgMethodNotAllowed   = "Méthode non autorisée."
)
