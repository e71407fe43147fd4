package diagnosis

// CareEntry describes a condition the diagnosis model can predict.
type CareEntry struct {
	Name        string
	Description string
	Remedies    []string
	Prevention  []string
}

// plantCareData is keyed by NormalizeClassKey output.
var plantCareData = map[string]CareEntry{
	"healthy": {
		Name:        "Healthy",
		Description: "No signs of disease or pest damage were detected. Keep up the current care routine.",
		Prevention: []string{
			"Water when the top few centimetres of soil are dry.",
			"Give the plant the light level its species prefers.",
			"Inspect leaves weekly for spots, webbing or discoloration.",
		},
	},
	"powdery_mildew": {
		Name:        "Powdery Mildew",
		Description: "A fungal infection that leaves white, powdery patches on leaves and stems, usually in warm, dry weather with high humidity at night.",
		Remedies: []string{
			"Remove and dispose of badly affected leaves.",
			"Spray with a diluted baking soda or potassium bicarbonate solution.",
			"Apply neem oil or a sulfur-based fungicide every 7 to 14 days.",
		},
		Prevention: []string{
			"Improve air circulation around the plant.",
			"Water at the base rather than over the leaves.",
			"Avoid excess nitrogen fertiliser.",
		},
	},
	"leaf_spot": {
		Name:        "Leaf Spot",
		Description: "Fungal or bacterial spots with dark margins that can merge and cause leaves to yellow and drop.",
		Remedies: []string{
			"Prune spotted leaves and clean tools afterwards.",
			"Apply a copper-based fungicide.",
		},
		Prevention: []string{
			"Keep foliage dry and water in the morning.",
			"Space plants to let leaves dry quickly.",
		},
	},
	"rust": {
		Name:        "Rust",
		Description: "Orange to brown pustules on leaf undersides caused by rust fungi; leaves may yellow and fall early.",
		Remedies: []string{
			"Remove infected leaves as soon as pustules appear.",
			"Treat with a sulfur or myclobutanil fungicide.",
		},
		Prevention: []string{
			"Avoid overhead watering.",
			"Clear fallen leaves from the pot or bed.",
		},
	},
	"blight": {
		Name:        "Blight",
		Description: "Rapid browning and death of leaves, stems or flowers, commonly caused by fungal or bacterial pathogens.",
		Remedies: []string{
			"Cut away affected tissue well below the damage.",
			"Apply a copper or chlorothalonil fungicide.",
		},
		Prevention: []string{
			"Rotate plant locations each season.",
			"Mulch to stop soil splashing onto leaves.",
		},
	},
	"early_blight": {
		Name:        "Early Blight",
		Description: "Concentric, target-like brown rings on older leaves caused by Alternaria fungi.",
		Remedies: []string{
			"Remove lower infected leaves.",
			"Apply a copper-based fungicide weekly.",
		},
		Prevention: []string{
			"Stake plants to keep leaves off the soil.",
			"Water at soil level.",
		},
	},
	"late_blight": {
		Name:        "Late Blight",
		Description: "Greasy, grey-green lesions that spread quickly in cool, wet weather, caused by Phytophthora infestans.",
		Remedies: []string{
			"Remove and bag infected plants; do not compost them.",
			"Protect nearby plants with a copper fungicide.",
		},
		Prevention: []string{
			"Choose resistant varieties.",
			"Keep foliage dry and well ventilated.",
		},
	},
	"bacterial_spot": {
		Name:        "Bacterial Spot",
		Description: "Small, water-soaked spots that turn dark and scabby on leaves and fruit, spread by splashing water.",
		Remedies: []string{
			"Remove affected leaves.",
			"Apply a copper spray to slow spread.",
		},
		Prevention: []string{
			"Use disease-free seed and transplants.",
			"Avoid working with wet plants.",
		},
	},
	"root_rot": {
		Name:        "Root Rot",
		Description: "Roots turn brown and mushy from overwatering or poor drainage; the plant wilts even when the soil is wet.",
		Remedies: []string{
			"Unpot the plant and trim all soft, dark roots.",
			"Repot in fresh, free-draining mix.",
			"Water sparingly until new growth appears.",
		},
		Prevention: []string{
			"Use pots with drainage holes.",
			"Let the soil dry between waterings.",
		},
	},
	"mosaic_virus": {
		Name:        "Mosaic Virus",
		Description: "Mottled light and dark green patterns on leaves with stunted, distorted growth.",
		Remedies: []string{
			"There is no cure; remove and destroy infected plants.",
			"Control aphids and other sap-sucking vectors.",
		},
		Prevention: []string{
			"Disinfect tools between plants.",
			"Wash hands after handling tobacco products.",
		},
	},
	"spider_mites": {
		Name:        "Spider Mites",
		Description: "Tiny mites that cause stippled, yellowing leaves and fine webbing, thriving in dry conditions.",
		Remedies: []string{
			"Rinse leaves with a strong spray of water.",
			"Apply insecticidal soap or neem oil every few days.",
		},
		Prevention: []string{
			"Raise humidity around the plant.",
			"Isolate new plants for two weeks.",
		},
	},
	"aphids": {
		Name:        "Aphids",
		Description: "Clusters of small soft-bodied insects on new growth that leave sticky honeydew and curled leaves.",
		Remedies: []string{
			"Wipe or spray them off with water.",
			"Treat with insecticidal soap.",
		},
		Prevention: []string{
			"Check new shoots regularly.",
			"Encourage ladybirds and lacewings outdoors.",
		},
	},
	"downy_mildew": {
		Name:        "Downy Mildew",
		Description: "Yellow patches on upper leaf surfaces with grey-purple fuzz underneath, favoured by cool, humid weather.",
		Remedies: []string{
			"Remove affected leaves.",
			"Apply a fungicide labelled for downy mildew.",
		},
		Prevention: []string{
			"Water early so leaves dry by evening.",
			"Increase spacing for airflow.",
		},
	},
}

// Lookup returns the care entry for a normalized class key.
func Lookup(key string) (CareEntry, bool) {
	e, ok := plantCareData[key]
	return e, ok
}
