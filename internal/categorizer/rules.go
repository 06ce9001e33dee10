package categorizer

import "banktocfo/cfopack/internal/models"

// defaultRules is the built-in category rulebook. Order matters: earlier
// categories win ties, so specific keyword sets (Software's "amazon web
// services") must come before generic ones (Shopping's "amazon"). Keywords
// are matched as lowercase substrings of the normalized or raw description.
var defaultRules = []models.CategoryRule{
	{
		Name: "Software",
		Keywords: []string{
			"aws", "amazon web services", "azure", "google cloud",
			"google workspace", "github", "gitlab", "slack", "zoom",
			"microsoft 365", "office 365", "adobe", "dropbox", "docusign",
			"quickbooks", "salesforce", "shopify", "squarespace", "wix",
			"godaddy", "namecheap", "heroku", "vercel", "netlify",
			"digitalocean", "linode",
		},
	},
	{
		Name: "Subscriptions",
		Keywords: []string{
			"hulu", "netflix", "spotify", "apple.com/bill", "apple music",
			"apple tv", "disney+", "disney plus", "youtube",
			"youtube premium", "amazon prime", "hbo max", "paramount",
			"peacock", "discovery+", "crunchyroll", "icloud", "google one",
			"audible", "kindle unlimited", "scribd", "pixieset", "patreon",
			"onlyfans", "twitch",
		},
	},
	{
		Name: "Revenue",
		Keywords: []string{
			"payroll", "salary", "deposit", "payment received",
			"payment receipt credit", "venmo", "zelle", "paypal", "stripe",
			"square", "invoice", "check deposit", "direct deposit",
			"ach credit", "wire transfer credit", "robinhood securities",
			"promotional credit", "canno payroll",
		},
	},
	{
		Name: "Debt Payments",
		Keywords: []string{
			"loan payment", "mortgage", "student loan", "car payment",
			"auto loan", "credit card payment", "applecard",
			"discover e-payment", "chase credit", "citi card", "capital one",
			"amex", "synchrony", "barclays", "bk of amer visa",
			"wells fargo payment", "usaa loan payment",
		},
	},
	{
		Name: "Fitness",
		Keywords: []string{
			"gym", "fitness", "yoga", "pilates", "crossfit", "equinox",
			"f45", "orangetheory", "peloton", "crunch", "planet fitness",
			"la fitness", "24 hour fitness", "anytime fitness",
			"eos fitness", "gold's gym", "lifetime fitness", "climbing",
			"boxing", "martial arts", "tennis",
		},
	},
	{
		Name: "Gas & Fuel",
		Keywords: []string{
			"gas", "fuel", "shell", "chevron", "exxon", "mobil", "bp",
			"texaco", "circle k", "7-eleven", "speedway", "wawa", "qt ",
			"quiktrip", "costco gas", "sam's club gas", "arco", "valero",
			"sunoco", "marathon", "phillips 66", "conoco", "pilot",
			"flying j", "outside", "pump",
		},
	},
	{
		Name: "Fast Food",
		Keywords: []string{
			"mcdonalds", "mcdonald's", "burger king", "wendy's", "taco bell",
			"chick-fil-a", "chick fil a", "popeyes", "kfc", "chipotle",
			"panda express", "subway", "arby's", "sonic", "jack in the box",
			"in-n-out", "five guys", "shake shack", "raising cane", "canes",
			"del taco", "qdoba", "moe's", "jersey mike", "jimmy john",
			"panera", "panera bread", "dunkin", "dunkin donuts", "starbucks",
			"dutch bros", "caribou coffee",
		},
	},
	{
		Name: "Restaurants",
		Keywords: []string{
			"restaurant", "cafe", "bistro", "grill", "tavern", "bar", "pub",
			"steakhouse", "sushi", "pizza", "mexican", "italian", "chinese",
			"thai", "indian", "japanese", "uchi", "taco boys",
			"bahama bucks", "sotol", "applebee", "chili's", "olive garden",
			"red lobster", "outback", "texas roadhouse", "longhorn",
			"cheesecake factory", "bj's restaurant", "buffalo wild wings",
			"hooters", "twin peaks", "yard house", "365 market",
		},
	},
	{
		Name: "Food Delivery",
		Keywords: []string{
			"doordash", "uber eats", "grubhub", "postmates", "seamless",
			"instacart", "gopuff", "favor", "waitr", "bite squad",
		},
	},
	{
		Name: "Groceries",
		Keywords: []string{
			"grocery", "supermarket", "whole foods", "trader joe", "safeway",
			"kroger", "publix", "albertsons", "food lion", "wegmans", "aldi",
			"lidl", "fresh market", "sprouts", "natural grocers",
			"harris teeter",
		},
	},
	{
		Name: "Shopping",
		Keywords: []string{
			"walmart", "target", "costco", "sam's club", "bj's wholesale",
			"amazon", "amzn mktp", "ebay", "etsy", "macy's", "nordstrom",
			"kohl's", "jcpenney", "dillard's", "tj maxx", "ross",
			"marshalls", "burlington", "old navy", "gap", "banana republic",
			"h&m", "zara", "forever 21", "urban outfitters", "anthropologie",
			"free people", "klarna", "afterpay", "affirm", "gymshark",
			"pandora",
		},
	},
	{
		Name: "Healthcare",
		Keywords: []string{
			"pharmacy", "cvs", "walgreens", "rite aid", "duane reade",
			"doctor", "hospital", "medical", "dental", "dentist", "vision",
			"optometry", "urgent care", "clinic", "lab", "laboratory",
			"physical therapy", "chiropractor", "therapist", "counseling",
			"health", "ro health", "hims", "hers", "nurx", "lemonaid",
		},
	},
	{
		Name: "Entertainment",
		Keywords: []string{
			"movie", "cinema", "theater", "theatre", "concert", "show",
			"live nation", "ticketmaster", "stubhub", "amc", "regal",
			"cinemark", "imax", "bowling", "arcade", "dave & buster",
			"main event", "topgolf", "golf", "mini golf", "escape room",
			"trampoline park", "theme park", "amusement", "zoo", "aquarium",
			"museum",
		},
	},
	{
		Name: "Personal Care",
		Keywords: []string{
			"salon", "haircut", "barber", "spa", "massage", "nail",
			"manicure", "pedicure", "waxing", "facial", "beauty",
			"cosmetics", "sephora", "ulta", "bath & body", "lush",
			"maestros barber",
		},
	},
	{
		Name: "Pet Care",
		Keywords: []string{
			"pet", "veterinary", "vet", "petsmart", "petco", "chewy", "dog",
			"cat", "animal hospital", "grooming",
		},
	},
	{
		Name: "Education",
		Keywords: []string{
			"tuition", "school", "university", "college", "academy",
			"course", "udemy", "coursera", "skillshare", "masterclass",
			"linkedin learning", "pluralsight", "datacamp", "bootcamp",
		},
	},
	{
		Name: "Childcare",
		Keywords: []string{
			"daycare", "childcare", "babysitter", "nanny", "tutor",
			"tutoring",
		},
	},
	{
		Name: "Home & Garden",
		Keywords: []string{
			"home depot", "lowes", "lowe's", "ace hardware", "menards",
			"home improvement", "garden", "landscaping", "lawn", "nursery",
			"ikea", "bed bath", "crate and barrel", "williams sonoma",
			"pottery barn", "west elm", "wayfair", "overstock",
		},
	},
	{
		Name: "Transportation",
		Keywords: []string{
			"uber", "lyft", "taxi", "cab", "bus", "train", "metro",
			"subway", "transit", "parking", "park", "toll", "ez pass",
			"fastrak", "parking.com", "parkwhiz", "spothero",
		},
	},
	{
		Name: "Travel",
		Keywords: []string{
			"airline", "flight", "airport", "hotel", "motel", "resort",
			"airbnb", "vrbo", "booking.com", "expedia", "hotels.com",
			"marriott", "hilton", "hyatt", "ihg", "best western",
			"southwest", "delta", "united", "american airlines", "jetblue",
			"spirit", "frontier", "alaska airlines", "rental car", "hertz",
			"enterprise", "budget", "avis", "national", "alamo", "dollar",
			"thrifty", "turo", "zipcar",
		},
	},
	{
		Name: "Investments",
		Keywords: []string{
			"robinhood", "coinbase", "crypto", "bitcoin", "ethereum",
			"etrade", "schwab", "fidelity", "vanguard", "ameritrade",
			"webull", "acorns", "stash", "betterment", "wealthfront",
			"jpms llc", "jpmorgan", "mspbna",
		},
	},
	{
		Name: "COGS",
		Keywords: []string{
			"inventory", "supplies", "wholesale", "materials", "merchandise",
			"stock", "vendor",
		},
	},
	{
		Name: "Marketing",
		Keywords: []string{
			"google ads", "facebook ads", "meta ads", "instagram ads",
			"linkedin ads", "twitter ads", "tiktok ads", "pinterest ads",
			"reddit ads", "marketing", "advertising", "promotion",
			"campaign", "mailchimp", "constant contact", "sendinblue",
			"convertkit", "hubspot", "semrush", "ahrefs", "moz",
		},
	},
	{
		Name: "Office",
		Keywords: []string{
			"staples", "office depot", "office max", "best buy",
			"apple store", "dell", "hp", "lenovo", "microsoft store",
			"furniture", "desk", "chair", "monitor", "laptop", "printer",
			"computer",
		},
	},
	{
		Name: "Rent",
		Keywords: []string{
			"rent", "lease", "property", "landlord", "real estate",
			"apartment",
		},
	},
	{
		Name: "Utilities",
		Keywords: []string{
			"electric", "electricity", "gas company", "water", "sewer",
			"trash", "internet", "broadband", "wifi", "phone", "mobile",
			"cellular", "at&t", "verizon", "t-mobile", "sprint", "cricket",
			"boost mobile", "metro pcs", "comcast", "xfinity", "spectrum",
			"cox", "optimum", "centurylink", "frontier", "dish", "directv",
		},
	},
	{
		Name: "Insurance",
		Keywords: []string{
			"insurance", "policy", "premium", "usaa insurance", "state farm",
			"geico", "progressive", "allstate", "farmers", "liberty mutual",
			"nationwide", "travelers", "american family", "health insurance",
			"auto insurance", "car insurance", "life insurance",
			"dental insurance", "vision insurance",
		},
	},
	{
		Name: "Professional Services",
		Keywords: []string{
			"attorney", "lawyer", "legal", "accountant", "cpa", "tax prep",
			"consultant", "consulting", "freelancer", "contractor", "agency",
			"upwork", "fiverr", "thumbtack", "taskrabbit",
		},
	},
	{
		Name: "Bank Fees",
		Keywords: []string{
			"fee", "service charge", "atm fee", "overdraft", "wire fee",
			"interest charge", "monthly fee", "maintenance fee",
			"transfer fee", "acctverify",
		},
	},
	{
		Name: "Payroll",
		Keywords: []string{
			"gusto", "adp", "paychex", "payroll", "employee", "wages",
			"salary payment", "paycom", "rippling", "bamboohr", "zenefits",
		},
	},
	{
		Name: "Taxes",
		Keywords: []string{
			"irs", "tax", "federal tax", "state tax", "sales tax",
			"payroll tax", "estimated tax", "quarterly tax", "franchise tax",
			"property tax",
		},
	},
}

// DefaultRules returns a copy of the built-in rulebook in declaration order.
func DefaultRules() []models.CategoryRule {
	rules := make([]models.CategoryRule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}
