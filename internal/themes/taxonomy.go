package themes

// theme ids in declaration order. Ranking ties are broken by this order,
// so it must stay stable.
var themeOrder = []string{
	"coming_of_age",
	"self_discovery",
	"love_romance",
	"morality",
	"social_criticism",
	"adventure",
	"nature",
	"death_mortality",
	"family",
	"war_conflict",
	"freedom",
	"faith_religion",
	"ambition",
	"isolation",
}

// labels maps theme ids to their display strings.
var labels = map[string]string{
	"coming_of_age":    "Coming of Age",
	"self_discovery":   "Self-Discovery",
	"love_romance":     "Love & Romance",
	"morality":         "Morality & Ethics",
	"social_criticism": "Social Criticism",
	"adventure":        "Adventure",
	"nature":           "Nature",
	"death_mortality":  "Death & Mortality",
	"family":           "Family",
	"war_conflict":     "War & Conflict",
	"freedom":          "Freedom",
	"faith_religion":   "Faith & Religion",
	"ambition":         "Ambition & Power",
	"isolation":        "Isolation & Alienation",
}

// keywords holds the per-language keyword lists for each theme. The
// tables are read-only process-wide data; they are never mutated and are
// safe to share across goroutines.
var keywords = map[string]map[string][]string{
	"en": {
		"coming_of_age":    {"growing up", "childhood", "youth", "adolescent", "mature", "coming of age", "rite of passage", "innocence", "adulthood"},
		"self_discovery":   {"identity", "self", "soul", "purpose", "meaning", "destiny", "truth", "enlightenment", "awakening", "realization"},
		"love_romance":     {"love", "heart", "passion", "beloved", "marriage", "romance", "affection", "devotion", "desire"},
		"morality":         {"moral", "virtue", "sin", "conscience", "duty", "honor", "righteous", "ethical", "good", "evil", "temptation"},
		"social_criticism": {"society", "class", "poverty", "wealth", "injustice", "oppression", "inequality", "corruption", "hypocrisy"},
		"adventure":        {"adventure", "journey", "quest", "explore", "discover", "voyage", "expedition", "danger", "brave", "hero"},
		"nature":           {"nature", "forest", "mountain", "sea", "river", "wild", "animal", "natural", "landscape"},
		"death_mortality":  {"death", "die", "grave", "mortal", "funeral", "ghost", "afterlife", "eternal", "fate"},
		"family":           {"family", "father", "mother", "brother", "sister", "parent", "child", "home", "heritage"},
		"war_conflict":     {"war", "battle", "soldier", "army", "enemy", "fight", "conflict", "peace", "victory", "defeat"},
		"freedom":          {"freedom", "liberty", "free", "escape", "prison", "captive", "chains", "independence"},
		"faith_religion":   {"god", "faith", "prayer", "church", "soul", "heaven", "divine", "spirit", "holy", "salvation"},
		"ambition":         {"ambition", "power", "success", "glory", "fame", "fortune", "aspiration", "dream", "goal"},
		"isolation":        {"alone", "lonely", "solitude", "isolation", "exile", "outcast", "stranger", "alienation"},
	},
	"de": {
		"coming_of_age":    {"erwachsen", "jugend", "kindheit", "reife", "entwicklung", "bildung", "lehrjahre"},
		"self_discovery":   {"selbst", "seele", "identität", "sinn", "wahrheit", "erkenntnis", "erwachen", "bestimmung"},
		"love_romance":     {"liebe", "herz", "leidenschaft", "ehe", "hochzeit", "zuneigung", "sehnsucht", "verlangen"},
		"morality":         {"moral", "tugend", "sünde", "gewissen", "pflicht", "ehre", "gut", "böse", "schuld"},
		"social_criticism": {"gesellschaft", "klasse", "armut", "reichtum", "ungerechtigkeit", "unterdrückung", "bürger"},
		"adventure":        {"abenteuer", "reise", "fahrt", "entdeckung", "gefahr", "held", "mut", "wagnis"},
		"nature":           {"natur", "wald", "berg", "meer", "fluss", "wild", "tier", "landschaft"},
		"death_mortality":  {"tod", "sterben", "grab", "sterblich", "geist", "ewigkeit", "schicksal", "ende"},
		"family":           {"familie", "vater", "mutter", "bruder", "schwester", "eltern", "kind", "heim", "erbe"},
		"war_conflict":     {"krieg", "kampf", "soldat", "heer", "feind", "schlacht", "frieden", "sieg", "niederlage"},
		"freedom":          {"freiheit", "frei", "flucht", "gefängnis", "ketten", "befreiung", "unabhängigkeit"},
		"faith_religion":   {"gott", "glaube", "gebet", "kirche", "seele", "himmel", "heilig", "erlösung", "segen"},
		"ambition":         {"ehrgeiz", "macht", "erfolg", "ruhm", "traum", "ziel", "streben", "aufstieg"},
		"isolation":        {"einsamkeit", "allein", "einsam", "fremd", "außenseiter", "verbannt", "verlassen"},
	},
	"es": {
		"coming_of_age":    {"crecer", "juventud", "infancia", "madurez", "adolescencia", "formación"},
		"self_discovery":   {"identidad", "alma", "sentido", "verdad", "destino", "despertar", "iluminación"},
		"love_romance":     {"amor", "corazón", "pasión", "matrimonio", "boda", "deseo", "cariño", "enamorado"},
		"morality":         {"moral", "virtud", "pecado", "conciencia", "deber", "honor", "bien", "mal", "culpa"},
		"social_criticism": {"sociedad", "clase", "pobreza", "riqueza", "injusticia", "opresión", "corrupción"},
		"adventure":        {"aventura", "viaje", "búsqueda", "explorar", "peligro", "héroe", "valiente"},
		"nature":           {"naturaleza", "bosque", "montaña", "mar", "río", "salvaje", "animal", "paisaje"},
		"death_mortality":  {"muerte", "morir", "tumba", "mortal", "fantasma", "eternidad", "destino"},
		"family":           {"familia", "padre", "madre", "hermano", "hermana", "hijo", "hogar", "herencia"},
		"war_conflict":     {"guerra", "batalla", "soldado", "ejército", "enemigo", "lucha", "paz", "victoria"},
		"freedom":          {"libertad", "libre", "escape", "prisión", "cadenas", "independencia", "liberación"},
		"faith_religion":   {"dios", "fe", "oración", "iglesia", "alma", "cielo", "sagrado", "salvación"},
		"ambition":         {"ambición", "poder", "éxito", "gloria", "fama", "sueño", "meta", "fortuna"},
		"isolation":        {"soledad", "solo", "solitario", "aislamiento", "exilio", "extranjero", "abandonado"},
	},
	"fr": {
		"coming_of_age":    {"grandir", "jeunesse", "enfance", "maturité", "adolescence", "formation"},
		"self_discovery":   {"identité", "âme", "sens", "vérité", "destin", "éveil", "illumination"},
		"love_romance":     {"amour", "coeur", "passion", "mariage", "noces", "désir", "tendresse", "amoureux"},
		"morality":         {"moral", "vertu", "péché", "conscience", "devoir", "honneur", "bien", "mal", "culpabilité"},
		"social_criticism": {"société", "classe", "pauvreté", "richesse", "injustice", "oppression", "corruption"},
		"adventure":        {"aventure", "voyage", "quête", "explorer", "danger", "héros", "brave"},
		"nature":           {"nature", "forêt", "montagne", "mer", "rivière", "sauvage", "animal", "paysage"},
		"death_mortality":  {"mort", "mourir", "tombe", "mortel", "fantôme", "éternité", "destin"},
		"family":           {"famille", "père", "mère", "frère", "soeur", "enfant", "foyer", "héritage"},
		"war_conflict":     {"guerre", "bataille", "soldat", "armée", "ennemi", "lutte", "paix", "victoire"},
		"freedom":          {"liberté", "libre", "évasion", "prison", "chaînes", "indépendance", "libération"},
		"faith_religion":   {"dieu", "foi", "prière", "église", "âme", "ciel", "sacré", "salut"},
		"ambition":         {"ambition", "pouvoir", "succès", "gloire", "renommée", "rêve", "but", "fortune"},
		"isolation":        {"solitude", "seul", "solitaire", "isolement", "exil", "étranger", "abandonné"},
	},
}
