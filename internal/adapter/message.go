package adapter

import (
	"regexp"
	"strings"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/domain"
	"github.com/kapu/busan-tour-bot-go/internal/iris"
	"github.com/kapu/busan-tour-bot-go/internal/util"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)

var (
	recommendAliases = []string{"mbti", "추천", "엠비티아이"}
	detailAliases    = []string{"상세", "상세보기", "detail", "info"}
	locationAliases  = []string{"위치", "위치보기", "location", "map"}
	typesAliases     = []string{"유형", "types"}
	helpAliases      = []string{"도움말", "도움", "help", "명령어"}
)

var localeAliases = map[string]string{
	"ko": "ko", "kr": "ko", "한국어": "ko", "korean": "ko",
	"en": "en", "eng": "en", "영어": "en", "english": "en",
	"ja": "ja", "jp": "ja", "일본어": "ja", "日本語": "ja", "japanese": "ja",
	"zh": "zh", "cn": "zh", "중국어": "zh", "中文": "zh", "chinese": "zh",
}

// MessageAdapter converts KakaoTalk messages to bot commands
type MessageAdapter struct {
	prefix string
}

func NewMessageAdapter(prefix string) *MessageAdapter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "!"
	}
	return &MessageAdapter{prefix: prefix}
}

// ParsedCommand is a recognized command with its arguments. Params keys:
// "mbti" (domain.MBTIType), "input" (raw type text), "locale", "name".
type ParsedCommand struct {
	Type       domain.CommandType
	Params     map[string]any
	RawMessage string
}

func (ma *MessageAdapter) ParseMessage(message *iris.Message) *ParsedCommand {
	text := message.Text()
	if text == "" || !strings.HasPrefix(text, ma.prefix) {
		return unknownCommand(text)
	}

	parts := strings.Fields(strings.TrimSpace(text[len(ma.prefix):]))
	if len(parts) == 0 {
		return unknownCommand(text)
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch {
	case util.Contains(recommendAliases, command):
		if len(args) == 0 {
			return newCommand(domain.CommandTypes, text, ma.localeParams(nil))
		}
		return ma.parseRecommend(args[0], args[1:], text)

	case util.Contains(typesAliases, command):
		return newCommand(domain.CommandTypes, text, ma.localeParams(args))

	case util.Contains(detailAliases, command):
		return ma.parseNamed(domain.CommandDetail, args, text)

	case util.Contains(locationAliases, command):
		return ma.parseNamed(domain.CommandLocation, args, text)

	case util.Contains(helpAliases, command):
		return newCommand(domain.CommandHelp, text, ma.localeParams(args))
	}

	// "!intj en" is shorthand for "!mbti intj en"
	if _, ok := domain.ParseMBTI(command); ok {
		return ma.parseRecommend(command, args, text)
	}
	return unknownCommand(text)
}

func (ma *MessageAdapter) parseRecommend(typeArg string, rest []string, text string) *ParsedCommand {
	params := ma.localeParams(rest)
	params["input"] = sanitize(typeArg, 16)
	if mbti, ok := domain.ParseMBTI(typeArg); ok {
		params["mbti"] = mbti
	}
	return newCommand(domain.CommandRecommend, text, params)
}

// parseNamed reads "<name...> [locale]". A trailing locale token is only
// taken when something remains for the name.
func (ma *MessageAdapter) parseNamed(cmd domain.CommandType, args []string, text string) *ParsedCommand {
	params := make(map[string]any)
	if n := len(args); n > 1 {
		if locale, ok := ParseLocale(args[n-1]); ok {
			params["locale"] = locale
			args = args[:n-1]
		}
	}
	if name := sanitize(strings.Join(args, " "), constants.StringLimits.Query); name != "" {
		params["name"] = name
	}
	return newCommand(cmd, text, params)
}

func (ma *MessageAdapter) localeParams(args []string) map[string]any {
	params := make(map[string]any)
	for _, arg := range args {
		if locale, ok := ParseLocale(arg); ok {
			params["locale"] = locale
			break
		}
	}
	return params
}

// ParseLocale maps a user token ("en", "영어", "日本語") to a locale code.
func ParseLocale(token string) (string, bool) {
	locale, ok := localeAliases[strings.ToLower(strings.TrimSpace(token))]
	return locale, ok
}

func sanitize(s string, maxRunes int) string {
	cleaned := controlCharsPattern.ReplaceAllString(s, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return util.TruncateString(cleaned, maxRunes)
}

func newCommand(t domain.CommandType, raw string, params map[string]any) *ParsedCommand {
	if params == nil {
		params = make(map[string]any)
	}
	return &ParsedCommand{Type: t, Params: params, RawMessage: raw}
}

func unknownCommand(raw string) *ParsedCommand {
	return newCommand(domain.CommandUnknown, raw, nil)
}
