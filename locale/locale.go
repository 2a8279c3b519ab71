package locale

import "strings"

// Language is a supported message language
type Language string

const (
	Portuguese Language = "br"
	English    Language = "en"
)

// Parse maps a URL or settings language tag to a supported language.
// Unknown tags fall back to English.
func Parse(tag string) Language {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "br", "pt", "pt-br", "pt_br":
		return Portuguese
	default:
		return English
	}
}

// MessageID identifies a user-facing message
type MessageID string

const (
	ItemNotFound                 MessageID = "item_not_found"
	DecorationNotFound           MessageID = "decoration_not_found"
	InsufficientCakes            MessageID = "insufficient_cakes"
	InsufficientCakesDecoration  MessageID = "insufficient_cakes_decoration"
	BackgroundAlreadyOwned       MessageID = "background_already_owned"
	DecorationAlreadyOwned       MessageID = "decoration_already_owned"
	ItemNotOwned                 MessageID = "item_not_owned"
	DecorationNotOwned           MessageID = "decoration_not_owned"
	DailyAlreadyClaimed          MessageID = "daily_already_claimed"
	NoRouletteSpins              MessageID = "no_roulette_spins"
	RouletteDisabled             MessageID = "roulette_disabled"
	PremiumKeyNotFound           MessageID = "premium_key_not_found"
	PremiumKeyUsed               MessageID = "premium_key_used"
	PremiumKeyExpired            MessageID = "premium_key_expired"
	PremiumKeyNotOwned           MessageID = "premium_key_not_owned"
	RiotCodeNotFound             MessageID = "riot_code_not_found"
	RiotAccountLinked            MessageID = "riot_account_linked"
	RiotAccountLinkedDescription MessageID = "riot_account_linked_description"
	RiotAccountFailed            MessageID = "riot_account_failed"
	RiotAccountFailedDescription MessageID = "riot_account_failed_description"
	UserNotFound                 MessageID = "user_not_found"
	InvalidRequest               MessageID = "invalid_request"
	InternalError                MessageID = "internal_error"
)

var messages = map[Language]map[MessageID]string{
	Portuguese: {
		ItemNotFound:                 "Este item não existe",
		DecorationNotFound:           "Esta decoração não existe",
		InsufficientCakes:            "Você não tem cakes suficientes para comprar este item",
		InsufficientCakesDecoration:  "Você não tem cakes suficientes para comprar esta decoração",
		BackgroundAlreadyOwned:       "Você já possui este background",
		DecorationAlreadyOwned:       "Você já possui esta decoração",
		ItemNotOwned:                 "Você não possui este item",
		DecorationNotOwned:           "Você não possui esta decoração",
		DailyAlreadyClaimed:          "Você já coletou seu daily hoje",
		NoRouletteSpins:              "Você não tem giros disponíveis",
		RouletteDisabled:             "A roleta está desativada",
		PremiumKeyNotFound:           "Esta chave não existe",
		PremiumKeyUsed:               "Esta chave já foi usada",
		PremiumKeyExpired:            "Esta chave expirou",
		PremiumKeyNotOwned:           "Esta chave pertence a outro usuário",
		RiotCodeNotFound:             "Este código de autenticação não existe",
		RiotAccountLinked:            "Sua conta da Riot Games foi conectada a Foxy",
		RiotAccountLinkedDescription: "Pode fechar esta página e voltar para o Discord",
		RiotAccountFailed:            "Sua conta da Riot Games não foi conectada a Foxy",
		RiotAccountFailedDescription: "Desculpe, mas ocorreu um problema estranho ao conectar sua conta da Riot Games a Foxy. Tente novamente mais tarde.",
		UserNotFound:                 "Este usuário não existe",
		InvalidRequest:               "Requisição inválida",
		InternalError:                "Erro interno do servidor",
	},
	English: {
		ItemNotFound:                 "This item does not exist",
		DecorationNotFound:           "This decoration does not exist",
		InsufficientCakes:            "You don't have enough cakes to buy this item",
		InsufficientCakesDecoration:  "You don't have enough cakes to buy this decoration",
		BackgroundAlreadyOwned:       "You already own this background",
		DecorationAlreadyOwned:       "You already own this decoration",
		ItemNotOwned:                 "You don't own this item",
		DecorationNotOwned:           "You don't own this decoration",
		DailyAlreadyClaimed:          "You already claimed your daily today",
		NoRouletteSpins:              "You have no spins left",
		RouletteDisabled:             "The roulette is disabled",
		PremiumKeyNotFound:           "This key does not exist",
		PremiumKeyUsed:               "This key has already been used",
		PremiumKeyExpired:            "This key has expired",
		PremiumKeyNotOwned:           "This key belongs to another user",
		RiotCodeNotFound:             "This authentication code does not exist",
		RiotAccountLinked:            "Your Riot Games account is now connected to Foxy",
		RiotAccountLinkedDescription: "You can close this page and go back to Discord",
		RiotAccountFailed:            "Your Riot Games account was not connected to Foxy",
		RiotAccountFailedDescription: "Sorry, something went wrong while connecting your Riot Games account to Foxy. Please try again later.",
		UserNotFound:                 "This user does not exist",
		InvalidRequest:               "Invalid request",
		InternalError:                "Internal Server Error",
	},
}

// Message returns the text of id in lang. Unknown ids are returned as is.
func Message(lang Language, id MessageID) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[English]
	}
	if text, ok := table[id]; ok {
		return text
	}
	return string(id)
}

var categories = map[Language]map[string]string{
	Portuguese: {
		"roleplay":   "Roleplay",
		"fun":        "Diversão",
		"games":      "Jogos",
		"economy":    "Economia",
		"image":      "Imagens",
		"noCategory": "Sem Categoria",
		"social":     "Social",
		"util":       "Utilitários",
	},
	English: {
		"roleplay":   "Roleplay",
		"fun":        "Fun",
		"games":      "Games",
		"economy":    "Economy",
		"image":      "Images",
		"noCategory": "No Category",
		"social":     "Social",
		"util":       "Utilities",
	},
}

// CategoryName returns the display name of a command category.
// The lookup uses the raw URL tag: only "br" and "en" have tables, anything
// else reads the English table. Unknown categories are returned unchanged.
func CategoryName(tag, categoryID string) string {
	table, ok := categories[Language(tag)]
	if !ok {
		table = categories[English]
	}
	if name, ok := table[categoryID]; ok {
		return name
	}
	return categoryID
}
