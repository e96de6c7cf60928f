package order

// Crust identifies one of the offered pizza bases.
type Crust string

// Size identifies one of the offered pizza sizes.
type Size string

// Topping identifies a single topping from the menu.
type Topping string

const (
	CrustThin    Crust = "thin"
	CrustClassic Crust = "classic"
	CrustStuffed Crust = "stuffed"
)

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

// ToppingCheese ships on every pizza unless the caller removed it explicitly.
const ToppingCheese Topping = "cheese"

// Crusts lists the bases in menu order.
func Crusts() []Crust {
	return []Crust{CrustThin, CrustClassic, CrustStuffed}
}

// Sizes lists the sizes in menu order.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}
}

// Toppings lists every topping the kitchen can put on a pizza.
func Toppings() []Topping {
	return []Topping{
		"pepperoni", "mushrooms", "onions", "sausage", "bacon", "cheese",
		"extra cheese", "black olives", "green peppers", "pineapple", "spinach",
		"ham", "tomatoes", "chicken", "beef", "anchovies",
		"jalapenos", "garlic", "artichokes", "broccoli", "feta cheese",
		"salami", "red onions", "corn", "zucchini", "eggplant",
		"prosciutto", "basil", "sun-dried tomatoes", "roasted red peppers", "arugula",
	}
}

// ValidCrust reports whether c is on the menu.
func ValidCrust(c Crust) bool {
	switch c {
	case CrustThin, CrustClassic, CrustStuffed:
		return true
	}
	return false
}

// ValidSize reports whether s is on the menu.
func ValidSize(s Size) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

var toppingSet = func() map[Topping]struct{} {
	set := make(map[Topping]struct{}, len(Toppings()))
	for _, t := range Toppings() {
		set[t] = struct{}{}
	}
	return set
}()

// ValidTopping reports whether t is on the menu.
func ValidTopping(t Topping) bool {
	_, ok := toppingSet[t]
	return ok
}
