package usecase

// Lookup tables for parsing Bulgarian grocery product names out of receipt
// OCR output. Receipts mix Cyrillic, Latin transliteration and ad hoc OCR
// spellings of the same word, so every table is keyed by folded variant and
// maps to a single canonical form.
//
// Tables is read-only after construction. Tests may build their own instance
// to exercise the parser with alternate data.

// Tables bundles all lookup data the normalizer depends on.
type Tables struct {
	BaseProducts map[string]string   // variant -> canonical Bulgarian noun
	Canonical    map[string]bool     // set of canonical base products
	Brands       map[string]string   // variant -> canonical brand spelling
	Types        map[string]string   // variant -> canonical descriptive type
	Units        map[string]string   // variant -> canonical unit symbol
	Attributes   map[string]string   // variant -> canonical attribute tag
	Synonyms     map[string][]string // canonical base -> search synonyms
	StopWords    map[string]bool
}

// DefaultTables builds the production lookup tables.
func DefaultTables() *Tables {
	base := buildBaseProductMap()

	canonical := make(map[string]bool, len(baseProductVariants))
	for name := range baseProductVariants {
		canonical[name] = true
	}

	return &Tables{
		BaseProducts: base,
		Canonical:    canonical,
		Brands:       buildBrandMap(),
		Types:        buildTypeMap(),
		Units:        buildUnitMap(),
		Attributes:   buildAttributeMap(),
		Synonyms:     buildSynonymMap(),
		StopWords:    buildStopWords(),
	}
}

// baseProductVariants maps each canonical Bulgarian product noun to the
// spellings seen on receipts: the Cyrillic word itself, common Latin
// transliterations, English names printed by some POS systems, and frequent
// OCR misreads.
var baseProductVariants = map[string][]string{
	"мляко":      {"мляко", "млеко", "мл9ко", "mleko", "mlyako", "mliako", "milk"},
	"хляб":       {"хляб", "хлеб", "hlyab", "hljab", "hlqb", "hleb", "bread"},
	"сирене":     {"сирене", "sirene", "cheese"},
	"кашкавал":   {"кашкавал", "kashkaval", "kaskaval"},
	"йогурт":     {"йогурт", "yogurt", "jogurt", "iogurt"},
	"вода":       {"вода", "voda", "water"},
	"салам":      {"салам", "salam"},
	"луканка":    {"луканка", "lukanka"},
	"кренвирши":  {"кренвирши", "krenvirshi", "krenvirsi"},
	"шунка":      {"шунка", "shunka", "sunka", "ham"},
	"масло":      {"масло", "maslo", "butter"},
	"яйца":       {"яйца", "яйце", "yaitsa", "yajca", "jajca", "eggs"},
	"бира":       {"бира", "bira", "beer"},
	"вино":       {"вино", "vino", "wine"},
	"кафе":       {"кафе", "kafe", "coffee"},
	"чай":        {"чай", "chai", "chay", "tea"},
	"сок":        {"сок", "sok", "juice"},
	"боза":       {"боза", "boza"},
	"айрян":      {"айрян", "айран", "ayran", "airyan", "airqn"},
	"захар":      {"захар", "zahar", "sugar"},
	"сол":        {"сол", "sol", "salt"},
	"олио":       {"олио", "olio", "oil"},
	"ориз":       {"ориз", "oriz", "rice"},
	"брашно":     {"брашно", "brashno", "brasno", "flour"},
	"макарони":   {"макарони", "makaroni", "pasta", "спагети", "spagheti", "spageti"},
	"бисквити":   {"бисквити", "biskviti", "biscuits"},
	"шоколад":    {"шоколад", "shokolad", "sokolad", "chocolate"},
	"вафла":      {"вафла", "вафли", "vafla", "vafli"},
	"банани":     {"банани", "банан", "banani", "banan", "banana", "bananas"},
	"ябълки":     {"ябълки", "ябълка", "yabalki", "qbalki", "jabalki", "apples"},
	"домати":     {"домати", "домат", "domati", "domat", "tomatoes"},
	"краставици": {"краставици", "краставица", "krastavici", "krastavitsi", "cucumbers"},
	"картофи":    {"картофи", "kartofi", "potatoes"},
	"лук":        {"лук", "luk", "onion"},
	"пиле":       {"пиле", "пилешко", "pile", "pileshko", "chicken"},
	"кайма":      {"кайма", "kaima", "kajma"},
}

func buildBaseProductMap() map[string]string {
	m := make(map[string]string)
	for canonical, variants := range baseProductVariants {
		for _, v := range variants {
			m[foldToken(v)] = canonical
		}
	}
	return m
}

// brandVariants maps folded spellings in either script to the label the
// brand itself prints on packaging. Canonicalization choice is arbitrary but
// must be consistent: both scripts fold to one spelling.
var brandVariants = map[string][]string{
	"Vereia":    {"vereia", "vereja", "vereya", "верея"},
	"Danone":    {"danone", "данон", "данони"},
	"Devin":     {"devin", "девин"},
	"Bankia":    {"bankia", "bankya", "банкя"},
	"Sayana":    {"sayana", "saiana", "саяна"},
	"Olympus":   {"olympus", "olimpus", "олимпус"},
	"Milka":     {"milka", "милка"},
	"Nestle":    {"nestle", "нестле"},
	"Zagorka":   {"zagorka", "загорка"},
	"Kamenitza": {"kamenitza", "kamenica", "каменица"},
	"Shumensko": {"shumensko", "шуменско"},
	"Coca-Cola": {"coca-cola", "cocacola", "кока-кола", "кокакола"},
	"Fanta":     {"fanta", "фанта"},
	"Dobrudja":  {"dobrudja", "dobrudzha", "добруджа"},
	"Boni":      {"boni", "бони"},
	"Tandem":    {"tandem", "тандем"},
}

func buildBrandMap() map[string]string {
	m := make(map[string]string)
	for canonical, variants := range brandVariants {
		for _, v := range variants {
			m[foldToken(v)] = canonical
		}
	}
	return m
}

// buildTypeMap covers the small set of descriptive modifiers that receipts
// print between the product and the brand (at most one per product).
func buildTypeMap() map[string]string {
	variants := map[string][]string{
		"прясно": {"прясно", "пресно", "prqsno", "prjasno", "presno", "fresh"},
		"кисело": {"кисело", "kiselo"},
		"пушен":  {"пушен", "пушена", "pushen", "pushena"},
		"сух":    {"сух", "suh", "suchen"},
		"печен":  {"печен", "pechen"},
	}
	m := make(map[string]string)
	for canonical, vs := range variants {
		for _, v := range vs {
			m[foldToken(v)] = canonical
		}
	}
	return m
}

// buildUnitMap normalizes every unit spelling a receipt can produce to one
// canonical symbol per unit family.
func buildUnitMap() map[string]string {
	return map[string]string{
		"л": "л", "l": "л", "lt": "л", "ltr": "л", "lit": "л",
		"литър": "л", "литра": "л", "litar": "л",
		"мл": "мл", "ml": "мл",
		"г": "г", "гр": "г", "g": "г", "gr": "г", "грама": "г",
		"кг": "кг", "kg": "кг",
		"бр": "бр", "br": "бр", "pcs": "бр", "kom": "бр",
	}
}

// buildAttributeMap canonicalizes known descriptive tags so the same tag
// matches across scripts. Unknown content tokens pass through folded.
func buildAttributeMap() map[string]string {
	variants := map[string][]string{
		"био":          {"био", "bio", "organic"},
		"пълнозърнест": {"пълнозърнест", "palnozarnest", "pylnozyrnest", "wholegrain"},
		"безлактозно":  {"безлактозно", "bezlaktozno", "laktozafree"},
		"нискомаслено": {"нискомаслено", "niskomasleno"},
		"бяло":         {"бяло", "бяла", "bqlo", "bjalo", "byalo"},
		"черен":        {"черен", "черна", "cheren", "cherna"},
		"натурален":    {"натурален", "натурална", "naturalen", "natural"},
	}
	m := make(map[string]string)
	for canonical, vs := range variants {
		for _, v := range vs {
			m[foldToken(v)] = canonical
		}
	}
	return m
}

// buildSynonymMap lists the alternate spellings emitted as search keywords
// for each canonical base product.
func buildSynonymMap() map[string][]string {
	return map[string][]string{
		"мляко":    {"milk", "mleko", "млеко"},
		"хляб":     {"bread", "hlyab", "hleb"},
		"сирене":   {"cheese", "sirene"},
		"кашкавал": {"kashkaval"},
		"йогурт":   {"yogurt", "jogurt"},
		"вода":     {"water", "voda"},
		"салам":    {"salam"},
		"масло":    {"butter", "maslo"},
		"яйца":     {"eggs", "yaitsa"},
		"бира":     {"beer", "bira"},
		"кафе":     {"coffee", "kafe"},
		"чай":      {"tea", "chai"},
		"сок":      {"juice", "sok"},
		"захар":    {"sugar", "zahar"},
		"ориз":     {"rice", "oriz"},
		"брашно":   {"flour", "brashno"},
		"шоколад":  {"chocolate", "shokolad"},
		"банани":   {"banana", "banani"},
		"ябълки":   {"apples", "yabalki"},
		"домати":   {"tomatoes", "domati"},
		"пиле":     {"chicken", "pile"},
	}
}

// buildStopWords lists connective and retail-noise tokens that carry no
// product information.
func buildStopWords() map[string]bool {
	return map[string]bool{
		// Bulgarian connectives
		"и": true, "с": true, "със": true, "за": true, "от": true,
		"на": true, "по": true, "без": true,
		// English connectives printed by some POS exports
		"and": true, "with": true, "of": true, "the": true,
		// retail noise
		"промо": true, "promo": true, "нов": true, "new": true,
		"опаковка": true, "opakovka": true, "пакет": true, "paket": true,
		"стек": true, "кутия": true, "box": true, "pack": true,
	}
}
