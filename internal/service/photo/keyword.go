package photo

const (
	genericKeyword = "korea busan tourism attraction"
	keywordSuffix  = " travel destination"
)

// ResolveKeyword maps an attraction to the search phrase used for its photo.
// Curated name overrides are returned verbatim; otherwise the category phrase
// (or the generic Busan phrase) gets the travel suffix.
func ResolveKeyword(name, category string) string {
	if kw, ok := nameKeywords[name]; ok {
		return kw
	}
	base, ok := categoryKeywords[category]
	if !ok {
		base = genericKeyword
	}
	return base + keywordSuffix
}

var nameKeywords = map[string]string{
	"범어사":           "korean temple traditional buddhist architecture",
	"부산박물관":         "museum korea busan cultural heritage",
	"국립해양박물관":       "maritime museum ocean ship",
	"해운대 해수욕장":      "busan haeundae beach korea ocean",
	"광안리 해수욕장":      "gwangalli beach busan night view bridge",
	"태종대":           "taejongdae cliff ocean korea busan",
	"감천문화마을":        "gamcheon culture village colorful houses busan",
	"자갈치시장":         "jagalchi fish market busan korea",
	"부산타워":          "busan tower city view korea",
	"센텀시티":          "centum city busan modern architecture",
	"해동용궁사":         "haedong yonggungsa temple ocean korea",
	"송도해상케이블카":      "cable car ocean busan korea",
	"부평깡통야시장":       "night market korea food street",
	"국제시장":          "international market korea traditional shopping",
	"을숙도 생태공원":      "eulsukdo ecological park birds nature korea",
	"광안대교":          "gwangan bridge busan night view",
	"다대포 해수욕장":      "dadaepo beach sunset korea busan",
	"민락수변공원":        "millak waterside park busan ocean",
	"용두산공원":         "yongdusan park busan tower korea",
	"온천천 시민공원":      "oncheoncheon park stream korea busan",
	"F1963 복합문화공간":  "f1963 cultural space industrial architecture",
	"부산현대미술관":       "contemporary art museum modern korea",
	"부산문화회관":        "cultural center performance hall korea",
	"부산국제금융센터":      "bifc busan international finance center",
	"벡스코":           "bexco convention center busan modern",
	"롯데월드 어드벤처 부산":  "lotte world adventure theme park busan",
	"해운대 블루라인 파크":   "blueline park train coastal busan",
	"부산 아쿠아리움":      "aquarium underwater marine life",
	"송도구름산책로":       "songdo cloud walk coastal path korea",
	"이기대 해안산책로":     "igidae coastal trail rocks ocean korea",
	"흰여울문화마을":       "huinnyeoul culture village white houses ocean",
	"UN평화공원":        "un peace park memorial korea busan",
	"보수동 책방골목":      "book street old bookstore korea traditional",
	"40계단 문화관광테마거리": "40 steps cultural street korea history",
	"부산민주공원":        "democracy park memorial korea busan",
	"전포카페거리":        "jeonpo cafe street trendy korea busan",
	"해리단길":          "haeridan gil street food cafe busan",
	"남포동":           "nampo dong shopping district busan korea",
}

var categoryKeywords = map[string]string{
	"사찰":              "korean temple buddhist traditional architecture",
	"박물관":             "museum cultural heritage korea",
	"미술관":             "art museum gallery korea",
	"공원":              "park nature korea landscape",
	"해수욕장":            "beach ocean korea coastal",
	"전망대":             "observatory city view korea",
	"시장":              "traditional market korea food",
	"문화마을":            "cultural village korea traditional houses",
	"온천":              "hot spring spa korea traditional",
	"케이블카":            "cable car mountain ocean view",
	"테마파크":            "theme park amusement rides",
	"아쿠아리움":           "aquarium marine life underwater",
	"문화거리":            "cultural street korea urban",
	"카페거리":            "cafe street trendy korea urban",
	"야시장":             "night market food street korea",
	"쇼핑몰":             "shopping mall modern korea",
	"랜드마크":            "landmark architecture korea modern",
	"항구":              "harbor port ships korea",
	"등대":              "lighthouse ocean coast korea",
	"산책로":             "walking trail nature korea coastal",
	"Temple":          "korean temple buddhist traditional architecture",
	"Museum":          "museum cultural heritage korea",
	"Art Museum":      "art museum gallery korea",
	"Park":            "park nature korea landscape",
	"Beach":           "beach ocean korea coastal",
	"Observatory":     "observatory city view korea",
	"Market":          "traditional market korea food",
	"Culture Village": "cultural village korea traditional houses",
	"Hot Springs":     "hot spring spa korea traditional",
	"Cable Car":       "cable car mountain ocean view korea",
	"Theme Park":      "theme park amusement rides",
	"Aquarium":        "aquarium marine life underwater",
	"Cultural Street": "cultural street korea urban",
	"Cafe Street":     "cafe street trendy korea urban",
	"Night Market":    "night market food street korea",
	"Shopping Mall":   "shopping mall modern korea",
	"Landmark":        "landmark architecture korea modern",
	"Port":            "harbor port ships korea",
	"Lighthouse":      "lighthouse ocean coast korea",
	"Walking Trail":   "walking trail nature korea coastal",
}
