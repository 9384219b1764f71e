package prompt

// Language selects the locale of instructions and schema hints.
type Language string

// Supported languages.
const (
	PortugueseBR Language = "pt-BR"
	English      Language = "en"
)

// IsValid checks if the language has a catalog.
func (l Language) IsValid() bool {
	_, ok := catalogs[l]
	return ok
}

// catalog holds the wording for one locale. Instruction templates take the
// quoted query and the result bound.
type catalog struct {
	byName  string
	byNotes string

	original, originalName, originalBrand, originalDescription string
	notes, notesTop, notesMiddle, notesBase                     string

	similarList, similarName, similarBrand, similarOrigin, similarReason string

	suggestionList, suggestionName, suggestionBrand, suggestionDescription string
}

var catalogs = map[Language]catalog{
	PortugueseBR: {
		byName: "Você é um especialista em perfumes. Para o perfume %s, forneça seus detalhes " +
			"e encontre até %d perfumes similares (contratipos ou inspirados). Responda em JSON " +
			"seguindo o schema fornecido. Detalhe as notas de topo, coração e base do perfume original. " +
			"Depois liste os perfumes similares com nome, marca, origem (ex: Brasileiro, Árabe, Francês) " +
			"e uma breve explicação de por que ele é considerado similar.",
		byNotes: "Você é um especialista em perfumes. Com base nas seguintes características ou notas: %s, " +
			"sugira até %d perfumes que correspondam a esse perfil. Para cada perfume, informe o nome, " +
			"a marca e uma breve descrição da fragrância. Responda em JSON seguindo o schema fornecido.",

		original:            "Perfume pesquisado.",
		originalName:        "Nome do perfume original.",
		originalBrand:       "Marca do perfume original.",
		originalDescription: "Breve descrição da fragrância original.",
		notes:               "Pirâmide olfativa.",
		notesTop:            "Notas de topo (saída).",
		notesMiddle:         "Notas de coração (corpo).",
		notesBase:           "Notas de base (fundo).",

		similarList:   "Perfumes similares, contratipos ou inspirados.",
		similarName:   "Nome do perfume similar.",
		similarBrand:  "Marca do perfume similar.",
		similarOrigin: "Origem do perfume (ex: Brasileiro, Árabe, Francês).",
		similarReason: "Por que é similar ao original.",

		suggestionList:        "Perfumes que combinam com as notas informadas.",
		suggestionName:        "Nome do perfume sugerido.",
		suggestionBrand:       "Marca do perfume sugerido.",
		suggestionDescription: "Breve descrição da fragrância.",
	},
	English: {
		byName: "You are a perfume expert. For the perfume %s, provide its details and find up to %d " +
			"similar perfumes (dupes or inspired-by alternatives). Answer in JSON following the provided " +
			"schema. Detail the top, heart and base notes of the original perfume. Then list the similar " +
			"perfumes with name, brand, origin (e.g. Brazilian, Arabic, French) and a short explanation " +
			"of why it is considered similar.",
		byNotes: "You are a perfume expert. Based on the following characteristics or notes: %s, suggest " +
			"up to %d perfumes that match this profile. For each perfume give the name, the brand and a " +
			"short description of the fragrance. Answer in JSON following the provided schema.",

		original:            "The perfume searched for.",
		originalName:        "Name of the original perfume.",
		originalBrand:       "Brand of the original perfume.",
		originalDescription: "Short description of the original fragrance.",
		notes:               "Olfactory pyramid.",
		notesTop:            "Top (opening) notes.",
		notesMiddle:         "Heart (middle) notes.",
		notesBase:           "Base (dry-down) notes.",

		similarList:   "Similar perfumes, dupes or inspired-by alternatives.",
		similarName:   "Name of the similar perfume.",
		similarBrand:  "Brand of the similar perfume.",
		similarOrigin: "Origin of the perfume (e.g. Brazilian, Arabic, French).",
		similarReason: "Why it resembles the original.",

		suggestionList:        "Perfumes matching the given notes.",
		suggestionName:        "Name of the suggested perfume.",
		suggestionBrand:       "Brand of the suggested perfume.",
		suggestionDescription: "Short description of the fragrance.",
	},
}
