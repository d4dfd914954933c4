package ais

// Packet is one message from the aisstream.io websocket feed.
type Packet struct {
	Msg      Message  `json:"Message"`
	MsgType  string   `json:"MessageType"`
	Metadata Metadata `json:"MetaData"`
}

// Metadata accompanies every aisstream message regardless of type.
type Metadata struct {
	MMSI      int     `json:"MMSI"`
	ShipName  string  `json:"ShipName"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeUtc   string  `json:"time_utc"`
}

// Message wraps the per-type payloads this service subscribes to.
type Message struct {
	PositionReport PositionReport `json:"PositionReport,omitempty"`
	ShipStaticData ShipStaticData `json:"ShipStaticData,omitempty"`
}

// PositionReport - Class A AIS Position Report (Messages 1, 2, and 3)
// Reference: https://www.navcen.uscg.gov/ais-class-a-reports
type PositionReport struct {
	Cog                float64 `json:"Cog"`
	Latitude           float64 `json:"Latitude"`
	Longitude          float64 `json:"Longitude"`
	MessageID          int     `json:"MessageID"`
	NavigationalStatus int     `json:"NavigationalStatus"`
	PositionAccuracy   bool    `json:"PositionAccuracy"`
	RateOfTurn         int     `json:"RateOfTurn"`
	Sog                float64 `json:"Sog"`
	Timestamp          int     `json:"Timestamp"`
	TrueHeading        int     `json:"TrueHeading"`
	UserID             int     `json:"UserID"`
	Valid              bool    `json:"Valid"`
}

// ShipStaticData - Class A Ship Static and Voyage Related Data (Message 5)
// Reference: https://www.navcen.uscg.gov/ais-class-a-static-voyage-message-5
type ShipStaticData struct {
	CallSign    string `json:"CallSign"`
	Destination string `json:"Destination"`
	Dimension   struct {
		A int `json:"A"`
		B int `json:"B"`
		C int `json:"C"`
		D int `json:"D"`
	} `json:"Dimension"`
	ImoNumber            int     `json:"ImoNumber"`
	MaximumStaticDraught float64 `json:"MaximumStaticDraught"`
	MessageID            int     `json:"MessageID"`
	Name                 string  `json:"Name"`
	Type                 int     `json:"Type"`
	UserID               int     `json:"UserID"`
	Valid                bool    `json:"Valid"`
}

// LengthM returns the overall length in metres from the bow/stern
// dimension halves; zero when the vessel never reported dimensions.
func (s ShipStaticData) LengthM() float64 {
	return float64(s.Dimension.A + s.Dimension.B)
}

// WidthM returns the overall beam in metres from the port/starboard
// dimension halves; zero when unreported.
func (s ShipStaticData) WidthM() float64 {
	return float64(s.Dimension.C + s.Dimension.D)
}

// TypeLabel maps the numeric AIS ship-type code to the coarse label the
// deadweight heuristics key on. Unknown codes map to "Other".
func TypeLabel(code int) string {
	switch {
	case code >= 60 && code <= 69:
		return "Passenger"
	case code >= 70 && code <= 79:
		return "Cargo"
	case code >= 80 && code <= 89:
		return "Tanker"
	case code == 30:
		return "Fishing"
	case code == 31 || code == 32:
		return "Towing"
	case code == 52:
		return "Tug"
	default:
		return "Other"
	}
}
