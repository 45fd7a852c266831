package models

import (
	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"

	"gopkg.in/yaml.v3"
)

// Platform defines the chat platforms a group can live on
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformTelegram Platform = "telegram"
	PlatformDiscord  Platform = "discord"
	PlatformLinktree Platform = "linktree"
	PlatformFacebook Platform = "facebook"
	PlatformSlack    Platform = "slack"
	PlatformMeetup   Platform = "meetup"
	PlatformWeChat   Platform = "wechat"
	PlatformOther    Platform = "other"
)

// Continent defines the closed set of continents a location can belong to
type Continent string

const (
	ContinentAfrica         Continent = "Africa"
	ContinentAntarctica     Continent = "Antarctica"
	ContinentAsia           Continent = "Asia"
	ContinentCentralAmerica Continent = "Central America"
	ContinentEurope         Continent = "Europe"
	ContinentNorthAmerica   Continent = "North America"
	ContinentOceania        Continent = "Oceania"
	ContinentSouthAmerica   Continent = "South America"
)

// Platforms returns every supported platform
func Platforms() []Platform {
	return []Platform{
		PlatformWhatsApp,
		PlatformTelegram,
		PlatformDiscord,
		PlatformLinktree,
		PlatformFacebook,
		PlatformSlack,
		PlatformMeetup,
		PlatformWeChat,
		PlatformOther,
	}
}

// PlatformNames returns every supported platform as plain strings
func PlatformNames() []string {
	out := make([]string, 0, len(Platforms()))
	for _, p := range Platforms() {
		out = append(out, string(p))
	}
	return out
}

// IsValid checks if the Platform is valid
func (p Platform) IsValid() bool {
	switch p {
	case PlatformWhatsApp, PlatformTelegram, PlatformDiscord, PlatformLinktree, PlatformFacebook,
		PlatformSlack, PlatformMeetup, PlatformWeChat, PlatformOther:
		return true
	}
	return false
}

// Label returns the human readable platform name used as icon alt text
func (p Platform) Label() string {
	switch p {
	case PlatformWhatsApp:
		return "WhatsApp"
	case PlatformTelegram:
		return "Telegram"
	case PlatformDiscord:
		return "Discord"
	case PlatformLinktree:
		return "Linktree"
	case PlatformFacebook:
		return "Facebook"
	case PlatformSlack:
		return "Slack"
	case PlatformMeetup:
		return "Meetup"
	case PlatformWeChat:
		return "WeChat"
	case PlatformOther:
		return "Link"
	}
	return ""
}

// Icon returns the icon file name for the platform, empty for unknown platforms
func (p Platform) Icon() string {
	switch p {
	case PlatformWhatsApp, PlatformTelegram, PlatformDiscord, PlatformLinktree, PlatformFacebook,
		PlatformSlack, PlatformMeetup, PlatformWeChat:
		return string(p) + ".svg"
	case PlatformOther:
		return "link.svg"
	}
	return ""
}

// UnmarshalYAML rejects platforms outside the closed set
func (p *Platform) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if !Platform(s).IsValid() {
		return apperrors.NewInvalidEnumError("platform", s, PlatformNames())
	}
	*p = Platform(s)
	return nil
}

// Continents returns every continent of the closed set
func Continents() []Continent {
	return []Continent{
		ContinentAfrica,
		ContinentAntarctica,
		ContinentAsia,
		ContinentCentralAmerica,
		ContinentEurope,
		ContinentNorthAmerica,
		ContinentOceania,
		ContinentSouthAmerica,
	}
}

// ContinentNames returns every continent as plain strings
func ContinentNames() []string {
	out := make([]string, 0, len(Continents()))
	for _, c := range Continents() {
		out = append(out, string(c))
	}
	return out
}

// IsValid checks if the Continent is valid
func (c Continent) IsValid() bool {
	switch c {
	case ContinentAfrica, ContinentAntarctica, ContinentAsia, ContinentCentralAmerica,
		ContinentEurope, ContinentNorthAmerica, ContinentOceania, ContinentSouthAmerica:
		return true
	}
	return false
}

// UnmarshalYAML rejects continents outside the closed set
func (c *Continent) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if !Continent(s).IsValid() {
		return apperrors.NewInvalidEnumError("continent", s, ContinentNames())
	}
	*c = Continent(s)
	return nil
}
