package command

// Declarations returns the built-in catalog source. Category order and
// pattern order are significant.
func Declarations() []Declaration {
	return []Declaration{
		// Navigation
		{ID: "go_home", Patterns: literals(
			"go home", "go to home", "home page", "take me home",
			"back to home", "main page", "home screen", "start page",
		)},
		{ID: "open_cart", Patterns: literals(
			"open cart", "show cart", "view cart", "go to cart",
			"my cart", "shopping cart", "see cart", "check cart",
		)},
		{ID: "open_profile", Patterns: literals(
			"open profile", "my profile", "view profile", "go to profile",
			"account", "my account", "profile page", "user profile",
		)},
		{ID: "open_orders", Patterns: literals(
			"show orders", "my orders", "view orders", "order history",
			"past orders", "previous orders", "check orders", "see orders",
		)},
		{ID: "open_wishlist", Patterns: literals(
			"open wishlist", "my wishlist", "view wishlist", "saved items",
			"favorites", "my favorites", "show wishlist", "wish list",
		)},
		{ID: "open_settings", Patterns: literals(
			"open settings", "settings", "preferences", "app settings",
			"my settings", "configuration", "options",
		)},
		{ID: "open_categories", Patterns: literals(
			"show categories", "all categories", "browse categories",
			"category list", "view categories", "product categories",
		)},
		{ID: "go_back", Patterns: literals(
			"go back", "back", "previous", "previous page",
			"return", "go previous", "back button",
		)},
		{ID: "go_forward", Patterns: literals(
			"go forward", "forward", "next", "next page",
		)},

		// Search
		{ID: "search_product", Extract: ExtractQuery, Example: "search for sneakers", Patterns: []Entry{
			Pattern(`(?:search for|search|find me|find|looking for|look for|show me|i want|get me) {query}`),
			Pattern(`(?:where can i find|where is|do you have) {query}`),
			Pattern(`(?:i need|i'm looking for|searching for) {query}`),
		}},
		{ID: "filter_category", Example: "show electronics category", Patterns: []Entry{
			Pattern(`(?:show|filter|display|browse) {category} category`),
			Pattern(`(?:only|just) {category} products`),
			Pattern(`{category} section`),
		}},
		{ID: "filter_price_under", Extract: ExtractPrice, Patterns: []Entry{
			Pattern(`(?:under|below|less than|cheaper than|maximum) {price} {currency}`),
			Pattern(`(?:under|below|less than) {price}`),
			Pattern(`budget {price}`),
		}},
		{ID: "filter_price_over", Extract: ExtractPrice, Patterns: []Entry{
			Pattern(`(?:over|above|more than|minimum) {price} {currency}`),
			Pattern(`(?:over|above|more than) {price}`),
		}},
		{ID: "sort_price_low", Extract: ExtractPrice, Patterns: literals(
			"sort by price", "cheapest first", "lowest price",
			"price low to high", "sort cheap", "affordable first",
		)},
		{ID: "sort_price_high", Extract: ExtractPrice, Patterns: literals(
			"expensive first", "highest price", "price high to low",
			"most expensive", "premium first",
		)},
		{ID: "sort_newest", Patterns: literals(
			"newest first", "latest products", "new arrivals",
			"sort by new", "recently added", "just arrived",
		)},
		{ID: "sort_popular", Patterns: literals(
			"most popular", "best selling", "trending",
			"top rated", "popular first", "hot items",
		)},
		{ID: "clear_filters", Patterns: literals(
			"clear filters", "reset filters", "remove filters",
			"show all", "no filter", "clear all filters",
		)},

		// Cart
		{ID: "add_to_cart", Extract: ExtractQuery, Patterns: literals(
			"add to cart", "add this", "put in cart", "add item",
			"buy this", "i want this", "add to basket", "get this",
			"add it", "put this in cart", "add to my cart",
		)},
		{ID: "add_multiple", Patterns: []Entry{
			Pattern(`add {quantity} (?:of these|of this|items|pieces)`),
			Pattern(`(?:add|put) {quantity} (?:to cart|in cart)`),
		}},
		{ID: "remove_from_cart", Patterns: literals(
			"remove from cart", "delete this", "remove this",
			"take out", "remove item", "delete from cart",
		)},
		{ID: "increase_quantity", Patterns: literals(
			"add one more", "increase", "plus one", "one more",
			"increase quantity", "add another", "more of this",
		)},
		{ID: "decrease_quantity", Patterns: literals(
			"reduce", "minus one", "decrease", "one less",
			"decrease quantity", "remove one", "less of this",
		)},
		{ID: "set_quantity", Patterns: []Entry{
			Pattern(`(?:set|change) quantity to {quantity}`),
			Pattern(`i want {quantity} (?:of these|of this|pieces|items)`),
			Pattern(`make it {quantity}`),
		}},
		{ID: "clear_cart", Patterns: literals(
			"clear cart", "empty cart", "delete all",
			"remove everything", "clear basket", "empty basket",
			"remove all items", "start fresh",
		)},
		{ID: "view_cart_total", Patterns: literals(
			"cart total", "how much", "total price",
			"what's the total", "show total", "calculate total",
		)},

		// Checkout
		{ID: "checkout", Patterns: literals(
			"checkout", "proceed to checkout", "pay now",
			"complete order", "finish order", "place order",
			"buy now", "proceed to payment", "go to checkout",
		)},
		{ID: "pay_with_momo", Patterns: literals(
			"pay with mobile money", "use momo", "mobile money",
			"mtn money", "vodafone cash", "airteltigo money",
			"pay with momo", "mobile payment",
		)},
		{ID: "pay_with_card", Patterns: literals(
			"pay with card", "use card", "credit card",
			"debit card", "card payment", "visa", "mastercard",
		)},
		{ID: "pay_with_cash", Patterns: literals(
			"cash on delivery", "pay cash", "pay on delivery",
			"cod", "cash payment", "pay when delivered",
		)},
		{ID: "apply_coupon", Patterns: []Entry{
			Pattern(`(?:apply|use) coupon {coupon_code}`),
			Pattern(`(?:apply|use) code {coupon_code}`),
			Pattern(`discount code {coupon_code}`),
			Literal("apply discount"),
			Literal("use promo code"),
		}},
		{ID: "select_address", Patterns: literals(
			"change address", "select address", "different address",
			"delivery address", "shipping address", "use another address",
		)},

		// Wishlist
		{ID: "add_to_wishlist", Patterns: literals(
			"add to wishlist", "save for later", "bookmark this",
			"save this", "add to favorites", "favorite this",
			"remember this", "save item",
		)},
		{ID: "remove_from_wishlist", Patterns: literals(
			"remove from wishlist", "unsave", "remove from favorites",
			"delete from wishlist", "unfavorite",
		)},
		{ID: "move_to_cart", Patterns: literals(
			"move to cart", "add from wishlist", "buy from wishlist",
			"move to basket", "add saved item to cart",
		)},

		// Product
		{ID: "view_product", Patterns: literals(
			"view product", "show details", "more info",
			"product details", "tell me more", "see details",
		)},
		{ID: "view_reviews", Patterns: literals(
			"show reviews", "read reviews", "customer reviews",
			"what do people say", "ratings", "see ratings",
		)},
		{ID: "check_stock", Patterns: literals(
			"is it available", "in stock", "check availability",
			"do you have it", "is it in stock", "availability",
		)},
		{ID: "view_images", Patterns: literals(
			"show images", "more pictures", "view photos",
			"see images", "product images", "gallery",
		)},
		{ID: "related_products", Patterns: literals(
			"similar products", "related items", "like this",
			"show similar", "alternatives", "other options",
		)},

		// Order tracking
		{ID: "track_order", Patterns: []Entry{
			Pattern(`track order {order_id}`),
			Pattern(`where is (?:my order|order) {order_id}`),
			Literal("track my order"),
			Literal("order status"),
			Literal("delivery status"),
			Literal("where is my package"),
			Literal("shipping status"),
		}},
		{ID: "cancel_order", Patterns: []Entry{
			Pattern(`cancel order {order_id}`),
			Literal("cancel my order"),
			Literal("cancel this order"),
			Literal("i want to cancel"),
			Literal("stop order"),
		}},
		{ID: "reorder", Patterns: literals(
			"order again", "reorder", "buy again",
			"repeat order", "same order",
		)},

		// Help and misc
		{ID: "help", Patterns: literals(
			"help", "what can you do", "commands",
			"voice commands", "how to use", "assist me",
			"i need help", "show commands",
		)},
		{ID: "repeat", Patterns: literals(
			"repeat", "say again", "what did you say",
			"come again", "pardon", "repeat that",
		)},
		{ID: "cancel_voice", Patterns: literals(
			"cancel", "never mind", "stop", "forget it",
			"dismiss", "close",
		)},
		{ID: "confirm", Patterns: literals(
			"yes", "confirm", "correct", "that's right",
			"proceed", "continue", "okay", "ok",
		)},
		{ID: "deny", Patterns: literals(
			"no", "wrong", "incorrect", "that's wrong",
			"not that", "cancel that",
		)},
	}
}

func literals(phrases ...string) []Entry {
	entries := make([]Entry, len(phrases))
	for i, p := range phrases {
		entries[i] = Literal(p)
	}
	return entries
}
