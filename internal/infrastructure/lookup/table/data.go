package table

// Volume-to-weight data for common ingredients. All values are grams per
// one unit. Sources: USDA FoodData Central, the King Arthur Flour weight
// chart, and the Serious Eats ingredient weight database.

// entry holds the per-unit weights for one canonical ingredient.
type entry struct {
	// units maps canonical unit names (cup, tbsp, tsp, whole, stick, ...)
	// to grams per unit.
	units map[string]float64
	// densityGPerML converts arbitrary volume units when set.
	densityGPerML float64
	notes         string
}

var volumeToGrams = map[string]entry{
	// Flours and starches
	"all-purpose flour": {
		units: map[string]float64{"cup": 125, "tbsp": 7.8, "tsp": 2.6},
		notes: "Spooned and leveled, not scooped",
	},
	"bread flour":       {units: map[string]float64{"cup": 127, "tbsp": 7.9, "tsp": 2.6}},
	"cake flour":        {units: map[string]float64{"cup": 114, "tbsp": 7.1, "tsp": 2.4}},
	"whole wheat flour": {units: map[string]float64{"cup": 120, "tbsp": 7.5, "tsp": 2.5}},
	"almond flour":      {units: map[string]float64{"cup": 96, "tbsp": 6.0, "tsp": 2.0}},
	"coconut flour":     {units: map[string]float64{"cup": 112, "tbsp": 7.0, "tsp": 2.3}},
	"rice flour":        {units: map[string]float64{"cup": 158, "tbsp": 9.9, "tsp": 3.3}},
	"rye flour":         {units: map[string]float64{"cup": 102, "tbsp": 6.4, "tsp": 2.1}},
	"cornstarch":        {units: map[string]float64{"cup": 128, "tbsp": 8.0, "tsp": 2.7}},
	"cornmeal":          {units: map[string]float64{"cup": 157, "tbsp": 9.8, "tsp": 3.3}},

	// Sugars and sweeteners
	"granulated sugar":   {units: map[string]float64{"cup": 200, "tbsp": 12.5, "tsp": 4.2}},
	"brown sugar packed": {units: map[string]float64{"cup": 220, "tbsp": 13.8, "tsp": 4.6}, notes: "Firmly packed"},
	"powdered sugar":     {units: map[string]float64{"cup": 120, "tbsp": 7.5, "tsp": 2.5}, notes: "Unsifted"},
	"honey":              {units: map[string]float64{"cup": 340, "tbsp": 21.3, "tsp": 7.1}, densityGPerML: 1.43},
	"maple syrup":        {units: map[string]float64{"cup": 322, "tbsp": 20.1, "tsp": 6.7}, densityGPerML: 1.36},
	"corn syrup":         {units: map[string]float64{"cup": 341, "tbsp": 21.3, "tsp": 7.1}, densityGPerML: 1.44},
	"molasses":           {units: map[string]float64{"cup": 337, "tbsp": 21.1, "tsp": 7.0}, densityGPerML: 1.42},

	// Fats and oils
	"butter unsalted": {units: map[string]float64{"cup": 227, "tbsp": 14.2, "tsp": 4.7, "stick": 113}},
	"butter salted":   {units: map[string]float64{"cup": 227, "tbsp": 14.2, "tsp": 4.7, "stick": 113}},
	"vegetable oil":   {units: map[string]float64{"cup": 218, "tbsp": 13.6, "tsp": 4.5}, densityGPerML: 0.92},
	"olive oil":       {units: map[string]float64{"cup": 216, "tbsp": 13.5, "tsp": 4.5}, densityGPerML: 0.91},
	"coconut oil":     {units: map[string]float64{"cup": 218, "tbsp": 13.6, "tsp": 4.5}, densityGPerML: 0.92},
	"shortening":      {units: map[string]float64{"cup": 191, "tbsp": 12.0, "tsp": 4.0}},

	// Dairy
	"whole milk":       {units: map[string]float64{"cup": 244, "tbsp": 15.3, "tsp": 5.1}, densityGPerML: 1.03},
	"2% milk":          {units: map[string]float64{"cup": 244, "tbsp": 15.3, "tsp": 5.1}, densityGPerML: 1.03},
	"skim milk":        {units: map[string]float64{"cup": 245, "tbsp": 15.3, "tsp": 5.1}, densityGPerML: 1.04},
	"buttermilk":       {units: map[string]float64{"cup": 245, "tbsp": 15.3, "tsp": 5.1}, densityGPerML: 1.04},
	"heavy cream":      {units: map[string]float64{"cup": 238, "tbsp": 14.9, "tsp": 5.0}, densityGPerML: 1.01},
	"sour cream":       {units: map[string]float64{"cup": 230, "tbsp": 14.4, "tsp": 4.8}},
	"greek yogurt":     {units: map[string]float64{"cup": 245, "tbsp": 15.3, "tsp": 5.1}},
	"cream cheese":     {units: map[string]float64{"cup": 232, "tbsp": 14.5, "tsp": 4.8}},
	"cheddar shredded": {units: map[string]float64{"cup": 113, "tbsp": 7.1}},
	"parmesan grated":  {units: map[string]float64{"cup": 100, "tbsp": 6.3, "tsp": 2.1}},

	// Eggs
	"egg whole large": {units: map[string]float64{"whole": 50, "large": 50, "medium": 44, "small": 38}},
	"egg white large": {units: map[string]float64{"whole": 30, "large": 30, "cup": 243, "tbsp": 15.2}},
	"egg yolk large":  {units: map[string]float64{"whole": 18, "large": 18, "cup": 243, "tbsp": 15.2}},

	// Liquids
	"water":           {units: map[string]float64{"cup": 237, "tbsp": 14.8, "tsp": 4.9}, densityGPerML: 1.0},
	"vanilla extract": {units: map[string]float64{"tbsp": 13.0, "tsp": 4.3}, densityGPerML: 0.88},

	// Leaveners and seasonings
	"baking powder": {units: map[string]float64{"tbsp": 12.0, "tsp": 4.0}},
	"baking soda":   {units: map[string]float64{"tbsp": 13.8, "tsp": 4.6}},
	"active dry yeast": {
		units: map[string]float64{"tbsp": 8.5, "tsp": 2.8, "packet": 7},
		notes: "One packet is 2 1/4 tsp",
	},
	"table salt":      {units: map[string]float64{"tbsp": 18.0, "tsp": 6.0}},
	"kosher salt":     {units: map[string]float64{"tbsp": 15.0, "tsp": 5.0}},
	"black pepper":    {units: map[string]float64{"tbsp": 6.9, "tsp": 2.3}},
	"ground cinnamon": {units: map[string]float64{"tbsp": 7.8, "tsp": 2.6}},
	"garlic":          {units: map[string]float64{"clove": 3, "tbsp": 8.5, "tsp": 2.8}},

	// Grains, nuts, chocolate
	"rolled oats":                {units: map[string]float64{"cup": 90, "tbsp": 5.6}},
	"quick oats":                 {units: map[string]float64{"cup": 88, "tbsp": 5.5}},
	"white rice uncooked":        {units: map[string]float64{"cup": 185, "tbsp": 11.6}},
	"chocolate chips semisweet":  {units: map[string]float64{"cup": 170, "tbsp": 10.6}},
	"cocoa powder unsweetened":   {units: map[string]float64{"cup": 84, "tbsp": 5.3, "tsp": 1.8}},
	"walnuts chopped":            {units: map[string]float64{"cup": 117, "tbsp": 7.3}},
	"almonds sliced":             {units: map[string]float64{"cup": 92, "tbsp": 5.8}},
	"peanut butter":              {units: map[string]float64{"cup": 258, "tbsp": 16.1, "tsp": 5.4}},
	"raisins":                    {units: map[string]float64{"cup": 145, "tbsp": 9.1}},
	"shredded coconut sweetened": {units: map[string]float64{"cup": 93, "tbsp": 5.8}},
}

// ingredientAliases maps common spellings to canonical table names.
var ingredientAliases = map[string]string{
	"flour":             "all-purpose flour",
	"ap flour":          "all-purpose flour",
	"plain flour":       "all-purpose flour",
	"white flour":       "all-purpose flour",
	"self-rising flour": "all-purpose flour",
	"self rising flour": "all-purpose flour",

	"sugar":                "granulated sugar",
	"white sugar":          "granulated sugar",
	"caster sugar":         "granulated sugar",
	"superfine sugar":      "granulated sugar",
	"brown sugar":          "brown sugar packed",
	"light brown sugar":    "brown sugar packed",
	"dark brown sugar":     "brown sugar packed",
	"confectioners sugar":  "powdered sugar",
	"confectioner's sugar": "powdered sugar",
	"icing sugar":          "powdered sugar",
	"10x sugar":            "powdered sugar",

	"butter":             "butter unsalted",
	"unsalted butter":    "butter unsalted",
	"salted butter":      "butter salted",
	"sweet cream butter": "butter unsalted",

	"egg":        "egg whole large",
	"eggs":       "egg whole large",
	"large egg":  "egg whole large",
	"large eggs": "egg whole large",
	"egg white":  "egg white large",
	"egg whites": "egg white large",
	"egg yolk":   "egg yolk large",
	"egg yolks":  "egg yolk large",

	"milk":           "whole milk",
	"2 percent milk": "2% milk",
	"1 percent milk": "skim milk",
	"nonfat milk":    "skim milk",
	"fat free milk":  "skim milk",

	"oil":                    "vegetable oil",
	"cooking oil":            "vegetable oil",
	"neutral oil":            "vegetable oil",
	"extra virgin olive oil": "olive oil",
	"evoo":                   "olive oil",

	"oats":                       "rolled oats",
	"quick cooking oats":         "quick oats",
	"instant oats":               "quick oats",
	"vanilla":                    "vanilla extract",
	"pure vanilla extract":       "vanilla extract",
	"chocolate":                  "chocolate chips semisweet",
	"chocolate chips":            "chocolate chips semisweet",
	"semisweet chocolate chips":  "chocolate chips semisweet",
	"semi-sweet chocolate chips": "chocolate chips semisweet",
	"cocoa":                      "cocoa powder unsweetened",
	"cocoa powder":               "cocoa powder unsweetened",
	"unsweetened cocoa":          "cocoa powder unsweetened",
	"salt":                       "table salt",
	"yeast":                      "active dry yeast",
	"instant yeast":              "active dry yeast",
	"rice":                       "white rice uncooked",
	"walnuts":                    "walnuts chopped",
	"cream":                      "heavy cream",
	"whipping cream":             "heavy cream",
	"yogurt":                     "greek yogurt",
	"cinnamon":                   "ground cinnamon",
	"pepper":                     "black pepper",
}

// descriptorsToRemove are preparation notes that do not affect weight.
var descriptorsToRemove = []string{
	"softened", "melted", "room temperature", "cold", "warm",
	"sifted", "packed", "lightly packed", "firmly packed",
	"chopped", "diced", "minced", "sliced", "cubed",
	"fresh", "frozen", "thawed", "at room temperature",
}

// Milliliters per canonical volume unit.
var mlPerUnit = map[string]float64{
	"ml":    1,
	"l":     1000,
	"tsp":   4.929,
	"tbsp":  14.787,
	"cup":   236.588,
	"fl_oz": 29.574,
}

const (
	pinchGrams = 0.3 // ~1/16 tsp
	dashGrams  = 0.6 // ~1/8 tsp
)
