package domain

type CommandType string

const (
	CommandRecommend CommandType = "recommend"
	CommandDetail    CommandType = "detail"
	CommandLocation  CommandType = "location"
	CommandTypes     CommandType = "types"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandRecommend, CommandDetail, CommandLocation, CommandTypes, CommandHelp, CommandUnknown:
		return true
	default:
		return false
	}
}
