package crypto

// passphraseWords is the fixed dictionary for passphrase mode.
var passphraseWords = []string{
	"apple", "banana", "cherry", "date", "elderberry", "fig", "grape", "honeydew",
	"kiwi", "lemon", "mango", "nectarine", "orange", "papaya", "quince", "raspberry",
	"strawberry", "tangerine", "watermelon", "blueberry", "coconut", "dragonfruit",
	"guava", "jackfruit", "lime", "melon", "olive", "peach", "pear", "plum",
	"pineapple", "pomegranate", "apricot", "avocado", "blackberry", "cantaloupe",
	"carambola", "clementine", "durian", "grapefruit", "jujube", "kumquat",
	"lychee", "mandarin", "mulberry", "nance", "pomelo", "rambutan", "salak",
	"sapodilla", "soursop", "starfruit", "tamarind", "ugli", "voavanga", "yangmei",
	"zucchini", "acorn", "almond", "anise", "artichoke", "arugula", "asparagus",
	"aubergine", "bamboo", "bean", "beet", "broccoli", "brussels", "cabbage",
	"carrot", "cauliflower", "celery", "chard", "chickpea", "chive", "cocoa",
	"coffee", "collard", "corn", "cucumber", "currant", "dill", "eggplant",
	"endive", "fennel", "garlic", "ginger", "kale", "kohlrabi", "leek",
	"lentil", "lettuce", "mushroom", "mustard", "okra", "onion", "oregano",
	"parsley", "parsnip", "pea", "pepper", "potato", "pumpkin", "radish",
	"rhubarb", "rutabaga", "sage", "scallion", "shallot", "sorrel", "soybean",
	"spinach", "squash", "taro", "thyme", "tomato", "turnip", "vanilla",
	"watercress", "yam", "basil", "caper", "cardamom", "cassava",
	"chicory", "cinnamon", "clove", "coriander", "cumin", "curry", "dandelion",
	"fenugreek", "flax", "galangal", "ginseng", "horseradish",
	"juniper", "lavender", "lemongrass", "licorice", "marjoram", "marshmallow",
	"nutmeg", "paprika", "peppermint",
	"poppy", "rosemary", "saffron", "salt", "savory", "sesame",
	"spearmint", "tarragon", "turmeric", "wasabi",
}
