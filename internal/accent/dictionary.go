package accent

// staticDictionary maps Ghanaian English spellings, as they come out of
// speech-to-text, to standard English. Identity entries mark a word as known
// so it is never logged as unknown.
var staticDictionary = map[string]string{
	// Cart/Shopping related
	"cut":  "cart",
	"cot":  "cart",
	"cats": "cart",
	"kot":  "cart",
	"kart": "cart",

	// Shoes/Footwear
	"snekas":  "sneakers",
	"sneekas": "sneakers",
	"sneakaz": "sneakers",
	"sneakas": "sneakers",
	"shuz":    "shoes",
	"shooz":   "shoes",
	"shoos":   "shoes",
	"sandas":  "sandals",
	"sandalz": "sandals",
	"slippas": "slippers",
	"slipaz":  "slippers",

	// Common words
	"foh":   "for",
	"dis":   "this",
	"diz":   "this",
	"dat":   "that",
	"dhat":  "that",
	"de":    "the",
	"deh":   "the",
	"dem":   "them",
	"wey":   "where",
	"wetin": "what",
	"abi":   "or",
	"dey":   "is",
	"na":    "is",
	"sef":   "self",

	// Electronics
	"fone":       "phone",
	"fones":      "phones",
	"phon":       "phone",
	"laptap":     "laptop",
	"laptob":     "laptop",
	"computa":    "computer",
	"computah":   "computer",
	"tivi":       "tv",
	"teevee":     "tv",
	"televishon": "television",
	"headfone":   "headphone",
	"headfones":  "headphones",
	"earfone":    "earphone",
	"earfones":   "earphones",
	"chaja":      "charger",
	"chargah":    "charger",

	// Clothing
	"clodes":  "clothes",
	"clodez":  "clothes",
	"cloting": "clothing",
	"shert":   "shirt",
	"sherts":  "shirts",
	"tshert":  "t-shirt",
	"tshirt":  "t-shirt",
	"trousa":  "trousers",
	"trousaz": "trousers",
	"jeans":   "jeans",
	"jeanz":   "jeans",
	"dres":    "dress",
	"dreses":  "dresses",
	"sket":    "skirt",
	"skets":   "skirts",
	"jaket":   "jacket",
	"jakets":  "jackets",
	"kap":     "cap",
	"kaps":    "caps",
	"hat":     "hat",
	"hatz":    "hats",

	// Actions
	"ad":      "add",
	"addit":   "add it",
	"remov":   "remove",
	"removit": "remove it",
	"serch":   "search",
	"sech":    "search",
	"fain":    "find",
	"faind":   "find",
	"luk":     "look",
	"lukfor":  "look for",
	"sho":     "show",
	"shomi":   "show me",
	"boi":     "buy",
	"odah":    "order",
	"chekout": "checkout",
	"chek":    "check",
	"pei":     "pay",
	"paiment": "payment",

	// Numbers
	"wan":     "one",
	"tu":      "two",
	"tree":    "three",
	"fo":      "four",
	"faiv":    "five",
	"siks":    "six",
	"seven":   "seven",
	"eit":     "eight",
	"nain":    "nine",
	"ten":     "ten",
	"twenti":  "twenty",
	"teti":    "thirty",
	"foti":    "forty",
	"fifti":   "fifty",
	"handred": "hundred",
	"tausand": "thousand",

	// Currency
	"cedis":   "cedis",
	"cedi":    "cedi",
	"pesewas": "pesewas",

	// Categories
	"elektroniks": "electronics",
	"elektronic":  "electronic",
	"fashon":      "fashion",
	"fashun":      "fashion",
	"buti":        "beauty",
	"biuti":       "beauty",
	"helth":       "health",
	"helt":        "health",
	"hous":        "house",
	"kichen":      "kitchen",
	"kitchin":     "kitchen",
	"spoting":     "sporting",
	"spots":       "sports",
	"buk":         "book",
	"buks":        "books",
	"toi":         "toy",
	"toiz":        "toys",
	"beibi":       "baby",
	"bebi":        "baby",

	// Directions/Navigation
	"go":      "go",
	"gotu":    "go to",
	"bak":     "back",
	"forwad":  "forward",
	"neks":    "next",
	"previus": "previous",
	"hom":     "home",
	"profail": "profile",
	"profil":  "profile",
	"setings": "settings",
	"seting":  "setting",
	"odas":    "orders",
	"oda":     "order",
	"wishlis": "wishlist",
	"wishlst": "wishlist",

	// Common phrases
	"pliz":      "please",
	"plis":      "please",
	"tanks":     "thanks",
	"sori":      "sorry",
	"ekskyuz":   "excuse",
	"helo":      "hello",
	"hai":       "hi",
	"bai":       "bye",
	"gudnait":   "goodnight",
	"gudmoning": "good morning",

	// Product descriptors
	"chip":      "cheap",
	"chiper":    "cheaper",
	"ekspensiv": "expensive",
	"gud":       "good",
	"beter":     "better",
	"bes":       "best",
	"nyu":       "new",
	"big":       "big",
	"biga":      "bigger",
	"smol":      "small",
	"smola":     "smaller",

	// Mobile Money
	"momo":       "mobile money",
	"mtn":        "mtn",
	"vodafon":    "vodafone",
	"vodafone":   "vodafone",
	"airteltigo": "airteltigo",
	"airtel":     "airtel",
	"tigo":       "tigo",

	// Payment
	"kat":      "card",
	"kard":     "card",
	"kredit":   "credit",
	"debit":    "debit",
	"kash":     "cash",
	"deliveri": "delivery",
	"delivari": "delivery",

	// Quantities
	"mor":     "more",
	"les":     "less",
	"plenti":  "plenty",
	"som":     "some",
	"ol":      "all",
	"evritin": "everything",
	"notin":   "nothing",
	"eni":     "any",

	// Questions
	"wot": "what",
	"wen": "when",
	"wer": "where",
	"hau": "how",
	"wai": "why",
	"hu":  "who",

	// Misc common words
	"yes":     "yes",
	"yea":     "yes",
	"yah":     "yes",
	"no":      "no",
	"noh":     "no",
	"ok":      "ok",
	"okei":    "okay",
	"olrait":  "alright",
	"help":    "help",
	"helep":   "help",
	"repet":   "repeat",
	"agen":    "again",
	"kansel":  "cancel",
	"konfem":  "confirm",
	"konfirm": "confirm",
}

// commonWords suppresses unknown-word logging for ordinary English and the
// app's own vocabulary.
var commonWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "shall": {}, "can": {}, "need": {}, "dare": {},
	"to": {}, "of": {}, "in": {}, "for": {}, "on": {}, "with": {}, "at": {}, "by": {}, "from": {}, "as": {},
	"i": {}, "me": {}, "my": {}, "we": {}, "our": {}, "you": {}, "your": {}, "he": {}, "him": {}, "his": {},
	"she": {}, "her": {}, "it": {}, "its": {}, "they": {}, "them": {}, "their": {}, "this": {}, "that": {},
	"and": {}, "or": {}, "but": {}, "if": {}, "then": {}, "else": {}, "when": {}, "where": {}, "why": {},
	"how": {}, "what": {}, "which": {}, "who": {}, "whom": {}, "whose": {}, "all": {}, "each": {},
	"search": {}, "find": {}, "show": {}, "open": {}, "go": {}, "add": {}, "remove": {}, "cart": {},
	"home": {}, "profile": {}, "orders": {}, "checkout": {}, "pay": {}, "help": {}, "back": {},
	"product": {}, "products": {}, "category": {}, "price": {}, "item": {}, "items": {},
}
