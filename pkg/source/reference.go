package source

import "github.com/matzehuels/cloudweights/pkg/cloud"

// reference holds the compiled-in catalog: the top 20 terms of six Italian
// texts, sorted by count, descending.
var reference = NewCatalog(map[string][]cloud.RawCount{
	"alice.txt": {
		{Term: "alice", Count: 409},
		{Term: "regina", Count: 80},
		{Term: "voce", Count: 74},
		{Term: "re", Count: 68},
		{Term: "testuggine", Count: 56},
		{Term: "cappellaio", Count: 56},
		{Term: "falsa", Count: 54},
		{Term: "grifone", Count: 51},
		{Term: "via", Count: 51},
		{Term: "coniglio", Count: 50},
		{Term: "capo", Count: 47},
		{Term: "ora", Count: 47},
		{Term: "sorcio", Count: 44},
		{Term: "tutto", Count: 43},
		{Term: "duchessa", Count: 43},
		{Term: "illustrazione", Count: 42},
		{Term: "ghiro", Count: 37},
		{Term: "tempo", Count: 36},
		{Term: "gridò", Count: 33},
		{Term: "tre", Count: 33},
	},
	"boccaccio_decameron.txt": {
		{Term: "donna", Count: 1684},
		{Term: "uomo", Count: 780},
		{Term: "fatto", Count: 626},
		{Term: "casa", Count: 542},
		{Term: "giovane", Count: 483},
		{Term: "messer", Count: 455},
		{Term: "ora", Count: 429},
		{Term: "tutto", Count: 413},
		{Term: "re", Count: 399},
		{Term: "moglie", Count: 375},
		{Term: "novella", Count: 371},
		{Term: "tempo", Count: 366},
		{Term: "parole", Count: 337},
		{Term: "marito", Count: 330},
		{Term: "stato", Count: 326},
		{Term: "parte", Count: 326},
		{Term: "notte", Count: 303},
		{Term: "appresso", Count: 298},
		{Term: "amore", Count: 284},
		{Term: "volte", Count: 280},
	},
	"cecco_angiolieri_rime.txt": {
		{Term: "amor", Count: 49},
		{Term: "tutto", Count: 39},
		{Term: "cor", Count: 34},
		{Term: "donna", Count: 31},
		{Term: "dio", Count: 29},
		{Term: "amore", Count: 28},
		{Term: "uom", Count: 27},
		{Term: "becchina", Count: 24},
		{Term: "mal", Count: 23},
		{Term: "sed", Count: 23},
		{Term: "cecco", Count: 21},
		{Term: "vita", Count: 20},
		{Term: "par", Count: 20},
		{Term: "posso", Count: 19},
		{Term: "cuor", Count: 19},
		{Term: "mondo", Count: 19},
		{Term: "eo", Count: 19},
		{Term: "dico", Count: 19},
		{Term: "om", Count: 18},
		{Term: "anzi", Count: 18},
	},
	"divina_commedia.txt": {
		{Term: "occhi", Count: 213},
		{Term: "tutto", Count: 175},
		{Term: "mondo", Count: 143},
		{Term: "terra", Count: 137},
		{Term: "canto", Count: 132},
		{Term: "dio", Count: 127},
		{Term: "gente", Count: 125},
		{Term: "parte", Count: 118},
		{Term: "maestro", Count: 111},
		{Term: "colui", Count: 108},
		{Term: "sol", Count: 106},
		{Term: "ciel", Count: 106},
		{Term: "veder", Count: 105},
		{Term: "mente", Count: 103},
		{Term: "donna", Count: 95},
		{Term: "viso", Count: 92},
		{Term: "amor", Count: 90},
		{Term: "loco", Count: 90},
		{Term: "duca", Count: 89},
		{Term: "dolce", Count: 87},
	},
	"promessi_sposi.txt": {
		{Term: "renzo", Count: 585},
		{Term: "tutto", Count: 520},
		{Term: "ora", Count: 450},
		{Term: "don", Count: 448},
		{Term: "uomo", Count: 424},
		{Term: "lucia", Count: 397},
		{Term: "fatto", Count: 385},
		{Term: "parte", Count: 384},
		{Term: "tempo", Count: 372},
		{Term: "casa", Count: 327},
		{Term: "padre", Count: 285},
		{Term: "stato", Count: 262},
		{Term: "strada", Count: 260},
		{Term: "mano", Count: 255},
		{Term: "donna", Count: 251},
		{Term: "parole", Count: 245},
		{Term: "giorno", Count: 240},
		{Term: "abbondio", Count: 234},
		{Term: "momento", Count: 226},
		{Term: "agnese", Count: 219},
	},
	"verga_i_malavoglia.txt": {
		{Term: "ntoni", Count: 543},
		{Term: "don", Count: 429},
		{Term: "casa", Count: 347},
		{Term: "padron", Count: 321},
		{Term: "ora", Count: 276},
		{Term: "diceva", Count: 262},
		{Term: "dei", Count: 216},
		{Term: "colla", Count: 209},
		{Term: "mena", Count: 187},
		{Term: "michele", Count: 184},
		{Term: "compare", Count: 183},
		{Term: "nulla", Count: 179},
		{Term: "zio", Count: 179},
		{Term: "malavoglia", Count: 177},
		{Term: "occhi", Count: 165},
		{Term: "piedipapera", Count: 163},
		{Term: "colle", Count: 156},
		{Term: "tutto", Count: 148},
		{Term: "comare", Count: 146},
		{Term: "nonno", Count: 144},
	},
})

// Reference returns the compiled-in reference catalog.
func Reference() *Catalog { return reference }
