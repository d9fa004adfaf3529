package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/service/photo"
	"github.com/kapu/busan-tour-bot-go/internal/service/render"
	"github.com/kapu/busan-tour-bot-go/internal/util"
)

// ResponseFormatter renders chat replies in the requested locale.
type ResponseFormatter struct {
	prefix string
	texts  *domain.Texts
}

func NewResponseFormatter(prefix string, texts *domain.Texts) *ResponseFormatter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "!"
	}
	return &ResponseFormatter{prefix: prefix, texts: texts}
}

type recommendationLabels struct {
	WhyRecommend     string
	PhotoUnavailable string
	ViewDetails      string
	ShowLocation     string
}

type cardView struct {
	Number      int
	Name        string
	Category    string
	Reason      string
	Emoji       string
	PhotoURL    string
	PhotoOK     bool
	PhotoFailed bool
}

type recommendationView struct {
	MBTI        string
	TypeName    string
	Heading     string
	Description string
	Cards       []cardView
	Summary     string
	Prefix      string
	Labels      recommendationLabels
}

// FormatRecommendation renders a committed batch. Loaded cards link their
// photo, failed cards show the fallback note, pending cards show neither.
func (f *ResponseFormatter) FormatRecommendation(locale string, rec *domain.Recommendation, cards []*render.Card) string {
	if rec == nil || len(cards) == 0 {
		return f.FormatError(f.texts.Get(locale, "no_attractions"))
	}

	view := recommendationView{
		MBTI:        rec.Type.String(),
		TypeName:    f.texts.Get(locale, rec.Type.NameKey()),
		Heading:     rec.Title,
		Description: util.TruncateString(rec.Description, constants.StringLimits.Description),
		Prefix:      f.prefix,
		Labels: recommendationLabels{
			WhyRecommend:     f.texts.Get(locale, "why_recommend"),
			PhotoUnavailable: f.texts.Get(locale, "photo_unavailable"),
			ViewDetails:      f.texts.Get(locale, "view_details"),
			ShowLocation:     f.texts.Get(locale, "show_location"),
		},
	}

	loaded, pending := 0, 0
	for i, card := range cards {
		visual := card.Visual()
		cv := cardView{
			Number:      i + 1,
			Name:        card.Attraction.Name,
			Category:    card.Attraction.Category,
			Reason:      util.TruncateString(card.Attraction.Reason, constants.StringLimits.Reason),
			Emoji:       photo.IconEmoji(visual.Icon),
			PhotoOK:     visual.ShowPhoto,
			PhotoFailed: visual.ShowFallback,
		}
		switch {
		case visual.ShowPhoto:
			cv.PhotoURL = card.ImageURL
			loaded++
		case visual.ShowPlaceholder:
			pending++
		}
		view.Cards = append(view.Cards, cv)
	}

	view.Summary = strings.NewReplacer(
		"{loaded}", fmt.Sprint(loaded),
		"{total}", fmt.Sprint(len(cards)),
	).Replace(f.texts.Get(locale, "photos_summary"))
	if pending > 0 {
		view.Summary += " · " + f.texts.Get(locale, "photos_pending")
	}

	out, err := executeFormatterTemplate("recommendation", view)
	if err != nil {
		return f.FormatError(f.texts.Get(locale, "loading_error"))
	}
	return out
}

type typeEntry struct {
	Code string
	Name string
}

type typeGroup struct {
	Name  string
	Types []typeEntry
}

type typesView struct {
	Title  string
	Prompt string
	Groups []typeGroup
	Prefix string
}

// FormatTypes lists the 16 types in their four groups.
func (f *ResponseFormatter) FormatTypes(locale string) string {
	view := typesView{
		Title:  f.texts.Get(locale, "title"),
		Prompt: f.texts.Get(locale, "select_mbti"),
		Prefix: f.prefix,
	}
	for _, group := range domain.MBTIGroups {
		g := typeGroup{Name: f.texts.Get(locale, group.TextKey)}
		for _, t := range group.Types {
			g.Types = append(g.Types, typeEntry{Code: t.String(), Name: f.texts.Get(locale, t.NameKey())})
		}
		view.Groups = append(view.Groups, g)
	}

	out, err := executeFormatterTemplate("types", view)
	if err != nil {
		return f.FormatError(f.texts.Get(locale, "loading_error"))
	}
	return out
}

// FormatDetail shows the recommendation reason (when the attraction came from
// a recent batch) and the static detail entry when one exists.
func (f *ResponseFormatter) FormatDetail(locale string, attraction domain.Attraction, reasonKnown bool, detail *domain.AttractionDetail) string {
	var sb strings.Builder

	emoji := photo.IconEmoji(photo.FallbackIcon(attraction.Category))
	sb.WriteString(fmt.Sprintf("%s %s\n", emoji, attraction.Name))
	if attraction.Category != "" {
		sb.WriteString(fmt.Sprintf("🏷️ %s\n", attraction.Category))
	}

	if reasonKnown && attraction.Reason != "" {
		sb.WriteString(fmt.Sprintf("\n💡 %s\n%s\n", f.texts.Get(locale, "why_recommend"), attraction.Reason))
	}

	sb.WriteString(fmt.Sprintf("\n📖 %s\n", f.texts.Get(locale, "more_info")))
	if detail == nil {
		sb.WriteString(f.texts.Get(locale, "detail_hint"))
	} else {
		sb.WriteString(util.TruncateString(detail.Description, constants.StringLimits.Description))
		if detail.Address != "" {
			sb.WriteString(fmt.Sprintf("\n📍 %s: %s", f.texts.Get(locale, "address"), detail.Address))
		}
		if detail.Hours != "" {
			sb.WriteString(fmt.Sprintf("\n⏰ %s: %s", f.texts.Get(locale, "hours"), detail.Hours))
		}
		if detail.Phone != "" {
			sb.WriteString(fmt.Sprintf("\n☎️ %s: %s", f.texts.Get(locale, "phone"), detail.Phone))
		}
		if detail.Homepage != "" {
			sb.WriteString(fmt.Sprintf("\n🔗 %s", detail.Homepage))
		}
	}

	sb.WriteString(fmt.Sprintf("\n\n🗺️ %s: %s", f.texts.Get(locale, "show_location"), MapsURL(attraction.Name)))
	return sb.String()
}

func (f *ResponseFormatter) FormatLocation(locale, name string) string {
	return fmt.Sprintf("🗺️ %s · %s\n%s", name, f.texts.Get(locale, "show_location"), MapsURL(name))
}

// MapsURL builds a map search for the attraction within Busan.
func MapsURL(name string) string {
	query := strings.TrimSpace(name) + " " + constants.MapsConfig.RegionSuffix
	return constants.MapsConfig.SearchURL + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

func (f *ResponseFormatter) FormatHelp() string {
	p := f.prefix
	return fmt.Sprintf(`🧭 MBTI 부산 여행 추천 봇

🔎 추천 받기
  %smbti [유형] [언어] - 유형별 부산 관광지 추천
  예: "%smbti ENFP", "%sintj en"
  %smbti - 16가지 유형 목록

📖 관광지 정보
  %s상세 [관광지명] - 추천 이유와 상세 정보
  %s위치 [관광지명] - 지도에서 위치 보기

🌐 언어: ko, en, ja, zh

🌊 부산에서 즐거운 여행 되세요!`, p, p, p, p, p, p)
}

func (f *ResponseFormatter) FormatError(message string) string {
	return fmt.Sprintf("❌ %s", message)
}

func (f *ResponseFormatter) FormatUnknownType(locale, input string) string {
	return f.FormatError(fmt.Sprintf("%s: '%s'\n👉 %smbti", f.texts.Get(locale, "unknown_type"), input, f.prefix))
}

func (f *ResponseFormatter) FormatUnknownAttraction(locale, name string) string {
	return f.FormatError(fmt.Sprintf("%s: '%s'", f.texts.Get(locale, "unknown_attraction"), name))
}

func (f *ResponseFormatter) FormatLoadingError(locale string) string {
	return f.FormatError(f.texts.Get(locale, "loading_error"))
}

// Prefix returns the command prefix used in replies.
func (f *ResponseFormatter) Prefix() string {
	return f.prefix
}
