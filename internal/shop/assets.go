package shop

// localAsset is a cosmetic name/image override for a known product ID.
// The backend's seed data ships generic names and remote image URLs;
// these pin the display name and a bundled asset path instead.
type localAsset struct {
	Name  string
	Image string
}

var localAssets = map[string]localAsset{
	"1": {Name: "Baklava", Image: "assets/images/image-baklava-desktop.jpg"},
	"2": {Name: "Brownie", Image: "assets/images/image-brownie-desktop.jpg"},
	"3": {Name: "Cake", Image: "assets/images/image-cake-desktop.jpg"},
	"4": {Name: "Crème Brûlée", Image: "assets/images/image-creme-brulee-desktop.jpg"},
	"5": {Name: "Macaron", Image: "assets/images/image-macaron-desktop.jpg"},
	"6": {Name: "Meringue", Image: "assets/images/image-meringue-desktop.jpg"},
	"7": {Name: "Panna Cotta", Image: "assets/images/image-panna-cotta-desktop.jpg"},
	"8": {Name: "Tiramisu", Image: "assets/images/image-tiramisu-desktop.jpg"},
	"9": {Name: "Waffle", Image: "assets/images/image-waffle-desktop.jpg"},
}

// ApplyAssets overrides product names and images from the local asset
// table, in place. Unknown IDs pass through untouched.
func ApplyAssets(products []Product) {
	for i := range products {
		if a, ok := localAssets[products[i].ID]; ok {
			products[i].Name = a.Name
			products[i].Image = a.Image
		}
	}
}

// ApplyCartAssets overrides cart line images from the local asset
// table, in place. Names stay as the server reported them.
func ApplyCartAssets(lines []CartLine) {
	for i := range lines {
		if a, ok := localAssets[lines[i].ID]; ok {
			lines[i].Image = a.Image
		}
	}
}
