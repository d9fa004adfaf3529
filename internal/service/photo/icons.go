package photo

const defaultIcon = "fas fa-map-marker-alt"

// FallbackIcon returns the Font Awesome class shown when a photo cannot load.
func FallbackIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return defaultIcon
}

// IconEmoji maps an icon class to the emoji used in chat messages.
func IconEmoji(icon string) string {
	if e, ok := iconEmoji[icon]; ok {
		return e
	}
	return "📍"
}

var categoryIcons = map[string]string{
	"사찰":                     "fas fa-torii-gate",
	"박물관":                    "fas fa-university",
	"역사":                     "fas fa-landmark",
	"공원":                     "fas fa-tree",
	"산책로":                    "fas fa-walking",
	"문화시설":                   "fas fa-theater-masks",
	"도서관":                    "fas fa-book",
	"등대":                     "fas fa-lightbulb",
	"온천":                     "fas fa-hot-tub",
	"역사관":                    "fas fa-scroll",
	"영화관":                    "fas fa-film",
	"과학관":                    "fas fa-atom",
	"미술관":                    "fas fa-palette",
	"자연":                     "fas fa-mountain",
	"생태공원":                   "fas fa-leaf",
	"전통시장":                   "fas fa-store",
	"랜드마크":                   "fas fa-building",
	"비즈니스 구역":                "fas fa-briefcase",
	"전시컨벤션":                  "fas fa-calendar-alt",
	"고급 주거지":                 "fas fa-home",
	"쇼핑몰":                    "fas fa-shopping-cart",
	"고급 레스토랑":                "fas fa-utensils",
	"전망대":                    "fas fa-binoculars",
	"복합문화공간":                 "fas fa-building",
	"문화공간":                   "fas fa-theater-masks",
	"갤러리":                    "fas fa-image",
	"K-pop 성지":               "fas fa-music",
	"K-pop 관련":               "fas fa-microphone",
	"드라마 촬영지":                "fas fa-video",
	"문화마을":                   "fas fa-home",
	"해수욕장":                   "fas fa-umbrella-beach",
	"문학관":                    "fas fa-feather-alt",
	"책방거리":                   "fas fa-book-open",
	"역사거리":                   "fas fa-road",
	"테마파크":                   "fas fa-ferris-wheel",
	"관광열차":                   "fas fa-train",
	"케이블카":                   "fas fa-mountain",
	"아쿠아리움":                  "fas fa-fish",
	"문화거리":                   "fas fa-street-view",
	"이벤트":                    "fas fa-calendar-star",
	"수산시장":                   "fas fa-fish",
	"쇼핑거리":                   "fas fa-shopping-bag",
	"상업지구":                   "fas fa-city",
	"백화점":                    "fas fa-store-alt",
	"호텔":                     "fas fa-bed",
	"관공서":                    "fas fa-building-columns",
	"방송국":                    "fas fa-broadcast-tower",
	"야시장":                    "fas fa-moon",
	"카페거리":                   "fas fa-coffee",
	"항구":                     "fas fa-anchor",
	"예술관":                    "fas fa-paint-brush",
	"영화거리":                   "fas fa-film",
	"VR체험":                   "fas fa-vr-cardboard",
	"Temple":                 "fas fa-torii-gate",
	"Museum":                 "fas fa-university",
	"History":                "fas fa-landmark",
	"Park":                   "fas fa-tree",
	"Walking Trail":          "fas fa-walking",
	"Cultural Facility":      "fas fa-theater-masks",
	"Library":                "fas fa-book",
	"Lighthouse":             "fas fa-lightbulb",
	"Hot Springs":            "fas fa-hot-tub",
	"History Museum":         "fas fa-scroll",
	"Cinema":                 "fas fa-film",
	"Science Center":         "fas fa-atom",
	"Art Museum":             "fas fa-palette",
	"Nature":                 "fas fa-mountain",
	"Ecological Park":        "fas fa-leaf",
	"Traditional Market":     "fas fa-store",
	"Landmark":               "fas fa-building",
	"Business District":      "fas fa-briefcase",
	"Exhibition Convention":  "fas fa-calendar-alt",
	"Luxury Residential":     "fas fa-home",
	"Shopping Mall":          "fas fa-shopping-cart",
	"Fine Dining":            "fas fa-utensils",
	"Observatory":            "fas fa-binoculars",
	"Complex Cultural Space": "fas fa-building",
	"Cultural Space":         "fas fa-theater-masks",
	"Gallery":                "fas fa-image",
	"K-pop Holy Site":        "fas fa-music",
	"K-pop Related":          "fas fa-microphone",
	"Drama Location":         "fas fa-video",
	"Culture Village":        "fas fa-home",
	"Beach":                  "fas fa-umbrella-beach",
	"Literature Museum":      "fas fa-feather-alt",
	"Book Street":            "fas fa-book-open",
	"Historic Street":        "fas fa-road",
	"Theme Park":             "fas fa-ferris-wheel",
	"Tourist Train":          "fas fa-train",
	"Cable Car":              "fas fa-mountain",
	"Aquarium":               "fas fa-fish",
	"Cultural Street":        "fas fa-street-view",
	"Event":                  "fas fa-calendar-star",
	"Fish Market":            "fas fa-fish",
	"Shopping Street":        "fas fa-shopping-bag",
	"Department Store":       "fas fa-store-alt",
	"Hotel":                  "fas fa-bed",
	"Government Office":      "fas fa-building-columns",
	"Broadcasting Station":   "fas fa-broadcast-tower",
	"Night Market":           "fas fa-moon",
	"Cafe Street":            "fas fa-coffee",
	"Port":                   "fas fa-anchor",
	"Art Center":             "fas fa-paint-brush",
	"Movie Street":           "fas fa-film",
}

var iconEmoji = map[string]string{
	"fas fa-anchor":           "⚓",
	"fas fa-atom":             "⚛️",
	"fas fa-bed":              "🛏️",
	"fas fa-binoculars":       "🔭",
	"fas fa-book":             "📚",
	"fas fa-book-open":        "📖",
	"fas fa-briefcase":        "💼",
	"fas fa-broadcast-tower":  "🗼",
	"fas fa-building":         "🏢",
	"fas fa-building-columns": "🏛️",
	"fas fa-calendar-alt":     "📅",
	"fas fa-calendar-star":    "🎉",
	"fas fa-city":             "🏙️",
	"fas fa-coffee":           "☕",
	"fas fa-feather-alt":      "🪶",
	"fas fa-ferris-wheel":     "🎡",
	"fas fa-film":             "🎬",
	"fas fa-fish":             "🐟",
	"fas fa-home":             "🏠",
	"fas fa-hot-tub":          "♨️",
	"fas fa-image":            "🖼️",
	"fas fa-landmark":         "🏛️",
	"fas fa-leaf":             "🌿",
	"fas fa-lightbulb":        "💡",
	"fas fa-map-marker-alt":   "📍",
	"fas fa-microphone":       "🎤",
	"fas fa-moon":             "🌙",
	"fas fa-mountain":         "⛰️",
	"fas fa-music":            "🎵",
	"fas fa-paint-brush":      "🖌️",
	"fas fa-palette":          "🎨",
	"fas fa-road":             "🛣️",
	"fas fa-scroll":           "📜",
	"fas fa-shopping-bag":     "🛍️",
	"fas fa-shopping-cart":    "🛒",
	"fas fa-store":            "🏪",
	"fas fa-store-alt":        "🏬",
	"fas fa-street-view":      "🚶",
	"fas fa-theater-masks":    "🎭",
	"fas fa-torii-gate":       "⛩️",
	"fas fa-train":            "🚆",
	"fas fa-tree":             "🌳",
	"fas fa-umbrella-beach":   "🏖️",
	"fas fa-university":       "🏛️",
	"fas fa-utensils":         "🍴",
	"fas fa-video":            "🎥",
	"fas fa-vr-cardboard":     "🥽",
	"fas fa-walking":          "🚶",
}
