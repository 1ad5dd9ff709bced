package seo

import "saunahub/internal/locale"

// Static SEO reference tables. Slug strings are lowercase and already
// hyphenated; URLs are assembled by joining them with "-" under the locale
// path prefix. Greek entries use latinized slugs.

// Category is one product category with its per-locale URL slug.
type Category struct {
	Key   string // canonical key, also the Spanish slug
	Slugs map[locale.Locale]string
}

// Categories in fixed priority order. The first five are the "top"
// categories used by the bounded intent and modifier combinations.
var Categories = []Category{
	{Key: "saunas-finlandesas", Slugs: map[locale.Locale]string{
		"es": "saunas-finlandesas", "en": "finnish-saunas", "de": "finnische-saunas",
		"fr": "saunas-finlandais", "it": "saune-finlandesi", "pt": "saunas-finlandesas",
		"nl": "finse-saunas", "pl": "sauny-finskie", "cs": "finske-sauny", "el": "finlandikes-saounes",
	}},
	{Key: "jacuzzis-exterior", Slugs: map[locale.Locale]string{
		"es": "jacuzzis-exterior", "en": "outdoor-hot-tubs", "de": "aussen-whirlpools",
		"fr": "jacuzzis-exterieur", "it": "vasche-esterne", "pt": "jacuzzis-exterior",
		"nl": "buiten-jacuzzis", "pl": "jacuzzi-zewnetrzne", "cs": "venkovni-virivky", "el": "exoterika-tzakouzi",
	}},
	{Key: "baneras-hidromasaje", Slugs: map[locale.Locale]string{
		"es": "baneras-hidromasaje", "en": "whirlpool-baths", "de": "whirlpool-badewannen",
		"fr": "baignoires-balneo", "it": "vasche-idromassaggio", "pt": "banheiras-hidromassagem",
		"nl": "whirlpool-baden", "pl": "wanny-hydromasazowe", "cs": "virive-vany", "el": "banieres-ydromasaz",
	}},
	{Key: "cabinas-infrarrojos", Slugs: map[locale.Locale]string{
		"es": "cabinas-infrarrojos", "en": "infrared-cabins", "de": "infrarotkabinen",
		"fr": "cabines-infrarouges", "it": "cabine-infrarossi", "pt": "cabines-infravermelhos",
		"nl": "infrarood-cabines", "pl": "kabiny-podczerwone", "cs": "infrakabiny", "el": "kampines-yperythron",
	}},
	{Key: "spas-hinchables", Slugs: map[locale.Locale]string{
		"es": "spas-hinchables", "en": "inflatable-spas", "de": "aufblasbare-spas",
		"fr": "spas-gonflables", "it": "spa-gonfiabili", "pt": "spas-insuflaveis",
		"nl": "opblaasbare-spas", "pl": "spa-dmuchane", "cs": "nafukovaci-spa", "el": "fouskota-spa",
	}},
	{Key: "saunas-vapor", Slugs: map[locale.Locale]string{
		"es": "saunas-vapor", "en": "steam-saunas", "de": "dampfsaunas",
		"fr": "saunas-vapeur", "it": "saune-vapore", "pt": "saunas-vapor",
		"nl": "stoomsaunas", "pl": "sauny-parowe", "cs": "parni-sauny", "el": "saounes-atmou",
	}},
	{Key: "swim-spas", Slugs: map[locale.Locale]string{
		"es": "swim-spas", "en": "swim-spas", "de": "swim-spas",
		"fr": "spas-de-nage", "it": "swim-spa", "pt": "spas-natacao",
		"nl": "zwemspas", "pl": "baseny-spa", "cs": "plavecka-spa", "el": "spa-kolymvisis",
	}},
	{Key: "saunas-exterior", Slugs: map[locale.Locale]string{
		"es": "saunas-exterior", "en": "outdoor-saunas", "de": "aussensaunas",
		"fr": "saunas-exterieur", "it": "saune-esterno", "pt": "saunas-exterior",
		"nl": "buitensaunas", "pl": "sauny-ogrodowe", "cs": "venkovni-sauny", "el": "exoterikes-saounes",
	}},
	{Key: "estufas-sauna", Slugs: map[locale.Locale]string{
		"es": "estufas-sauna", "en": "sauna-heaters", "de": "saunaoefen",
		"fr": "poeles-sauna", "it": "stufe-sauna", "pt": "aquecedores-sauna",
		"nl": "saunakachels", "pl": "piece-do-sauny", "cs": "saunova-kamna", "el": "thermastres-saounas",
	}},
	{Key: "accesorios-spa", Slugs: map[locale.Locale]string{
		"es": "accesorios-spa", "en": "spa-accessories", "de": "spa-zubehoer",
		"fr": "accessoires-spa", "it": "accessori-spa", "pt": "acessorios-spa",
		"nl": "spa-accessoires", "pl": "akcesoria-spa", "cs": "spa-prislusenstvi", "el": "axesouar-spa",
	}},
}

// topCategoryCount bounds the intent-combination and modifier patterns.
const topCategoryCount = 5

// IntentSlugs maps intent keyword -> per-locale slug.
var IntentSlugs = map[string]map[locale.Locale]string{
	"buy": {
		"es": "comprar", "en": "buy", "de": "kaufen", "fr": "acheter", "it": "comprare",
		"pt": "comprar", "nl": "kopen", "pl": "kup", "cs": "koupit", "el": "agora",
	},
	"best": {
		"es": "mejores", "en": "best", "de": "beste", "fr": "meilleurs", "it": "migliori",
		"pt": "melhores", "nl": "beste", "pl": "najlepsze", "cs": "nejlepsi", "el": "kalyteres",
	},
	"cheap": {
		"es": "baratos", "en": "cheap", "de": "guenstige", "fr": "pas-cher", "it": "economici",
		"pt": "baratos", "nl": "goedkope", "pl": "tanie", "cs": "levne", "el": "ftines",
	},
	"premium": {
		"es": "premium", "en": "premium", "de": "premium", "fr": "premium", "it": "premium",
		"pt": "premium", "nl": "premium", "pl": "premium", "cs": "premium", "el": "premium",
	},
	"organic": {
		"es": "organico", "en": "organic", "de": "bio", "fr": "bio", "it": "biologico",
		"pt": "organico", "nl": "biologisch", "pl": "organiczny", "cs": "bio", "el": "viologiko",
	},
	"online": {
		"es": "online", "en": "online", "de": "online", "fr": "en-ligne", "it": "online",
		"pt": "online", "nl": "online", "pl": "online", "cs": "online", "el": "online",
	},
	"delivery": {
		"es": "entrega", "en": "delivery", "de": "lieferung", "fr": "livraison", "it": "consegna",
		"pt": "entrega", "nl": "bezorging", "pl": "dostawa", "cs": "doruceni", "el": "paradosi",
	},
	"near-me": {
		"es": "cerca-de-mi", "en": "near-me", "de": "in-der-naehe", "fr": "pres-de-moi", "it": "vicino-a-me",
		"pt": "perto-de-mim", "nl": "in-de-buurt", "pl": "w-poblizu", "cs": "v-okoli", "el": "konta-mou",
	},
	"price": {
		"es": "precio", "en": "price", "de": "preis", "fr": "prix", "it": "prezzo",
		"pt": "preco", "nl": "prijs", "pl": "cena", "cs": "cena", "el": "timi",
	},
	"offers": {
		"es": "ofertas", "en": "offers", "de": "angebote", "fr": "offres", "it": "offerte",
		"pt": "ofertas", "nl": "aanbiedingen", "pl": "oferty", "cs": "nabidky", "el": "prosfores",
	},
}

// Intent subsets per URL pattern, in enumeration order.
var (
	standardIntents  = []string{"buy", "best", "cheap", "premium", "organic", "online", "delivery", "near-me"}
	highValueIntents = []string{"buy", "best", "online", "delivery"}
	massiveIntents   = []string{"buy", "best", "cheap", "online", "delivery"}
)

// Modifiers are fixed marketing qualifiers combined with top categories.
var Modifiers = map[locale.Locale][]string{
	"es": {"organico", "premium", "laboratorio", "natural", "legal", "certificado"},
	"en": {"organic", "premium", "lab-tested", "natural", "legal", "certified"},
	"de": {"bio", "premium", "laborgetestet", "natuerlich", "legal", "zertifiziert"},
	"fr": {"bio", "premium", "teste-laboratoire", "naturel", "legal", "certifie"},
	"it": {"biologico", "premium", "testato-laboratorio", "naturale", "legale", "certificato"},
	"pt": {"organico", "premium", "testado-laboratorio", "natural", "legal", "certificado"},
	"nl": {"biologisch", "premium", "labgetest", "natuurlijk", "legaal", "gecertificeerd"},
	"pl": {"organiczny", "premium", "testowany", "naturalny", "legalny", "certyfikowany"},
	"cs": {"bio", "premium", "testovano", "prirodni", "legalni", "certifikovany"},
	"el": {"viologiko", "premium", "ergastiriako", "fysiko", "nomimo", "pistopoiimeno"},
}

// LocaleCountries maps each locale to the countries whose cities feed its
// landing pages.
var LocaleCountries = map[locale.Locale][]string{
	"es": {"ES"},
	"en": {"GB", "IE"},
	"de": {"DE", "AT", "CH"},
	"fr": {"FR", "BE"},
	"it": {"IT"},
	"pt": {"PT"},
	"nl": {"NL", "BE"},
	"pl": {"PL"},
	"cs": {"CZ"},
	"el": {"GR"},
}

// CategorySlugs returns the ordered slug list for a locale, falling back to
// the English slug when a translation is missing.
func CategorySlugs(loc locale.Locale) []string {
	out := make([]string, 0, len(Categories))
	for _, cat := range Categories {
		if s, ok := cat.Slugs[loc]; ok {
			out = append(out, s)
		} else {
			out = append(out, cat.Slugs[locale.Default])
		}
	}
	return out
}

// intentSlugList resolves intent keys to per-locale slugs, dropping keys the
// locale has no entry for.
func intentSlugList(keys []string, loc locale.Locale) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		trans, ok := IntentSlugs[key]
		if !ok {
			continue
		}
		s, ok := trans[loc]
		if !ok {
			s, ok = trans[locale.Default]
		}
		if ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func modifiersFor(loc locale.Locale) []string {
	if m, ok := Modifiers[loc]; ok {
		return m
	}
	return Modifiers[locale.Default]
}
