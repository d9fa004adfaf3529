package gallery

import "strings"

type attractionAliases struct {
	name    string
	aliases []string
}

// attractionIndex is checked in order; the first alias found in a title wins.
var attractionIndex = []attractionAliases{
	{"해운대", []string{"해운대", "해운대해수욕장", "해운대비치"}},
	{"광안리", []string{"광안리", "광안대교", "광안리해수욕장"}},
	{"범어사", []string{"범어사", "범어사계곡"}},
	{"부산타워", []string{"부산타워", "용두산공원"}},
	{"감천문화마을", []string{"감천", "감천문화마을", "감천동"}},
	{"태종대", []string{"태종대", "태종대유원지"}},
	{"자갈치시장", []string{"자갈치", "자갈치시장"}},
	{"국제시장", []string{"국제시장", "부평시장"}},
	{"동백섬", []string{"동백섬", "동백공원"}},
	{"오륙도", []string{"오륙도", "오륙도스카이워크"}},
	{"송도", []string{"송도", "송도해수욕장", "송도케이블카"}},
	{"흰여울문화마을", []string{"흰여울", "흰여울문화마을"}},
	{"다대포", []string{"다대포", "다대포해수욕장"}},
	{"기장", []string{"기장", "기장해수욕장"}},
	{"부산현대미술관", []string{"현대미술관", "부산현대미술관"}},
	{"UN기념공원", []string{"UN기념공원", "유엔기념공원"}},
	{"부산박물관", []string{"부산박물관", "시립박물관"}},
	{"부산국제영화제", []string{"BIFF", "영화제", "부산국제영화제"}},
	{"센텀시티", []string{"센텀", "센텀시티"}},
	{"서면", []string{"서면", "서면거리"}},
	{"남포동", []string{"남포동", "남포"}},
	{"용두산공원", []string{"용두산", "용두산공원"}},
	{"부산역", []string{"부산역", "부산스테이션"}},
	{"해동용궁사", []string{"해동용궁사", "용궁사"}},
	{"부산항", []string{"부산항", "부산포트"}},
	{"영도", []string{"영도", "영도대교"}},
	{"중구", []string{"중구", "부산중구"}},
	{"동래", []string{"동래", "동래온천"}},
	{"기장군", []string{"기장군", "기장읍"}},
	{"부산대학교", []string{"부산대", "부산대학교"}},
}

// Organize groups photos by the attraction their title mentions. Photos that
// match nothing are dropped.
func Organize(photos []Photo) map[string][]Photo {
	out := make(map[string][]Photo)
	for _, p := range photos {
		title := strings.ToLower(p.Title)
	match:
		for _, entry := range attractionIndex {
			for _, alias := range entry.aliases {
				if strings.Contains(title, strings.ToLower(alias)) {
					out[entry.name] = append(out[entry.name], p)
					break match
				}
			}
		}
	}
	return out
}
