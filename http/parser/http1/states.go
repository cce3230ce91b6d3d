package http1

type State uint8

const (
	NotStarted State = iota
	ReadingHeaders
	ReadingBody
	ReadingChunkedLength
	ReadingChunkedBody
	ReadingChunkedTerminator
	ReadingTrailerHeaders
	Completed
)

var stateNames = [...]string{
	NotStarted:               "NotStarted",
	ReadingHeaders:           "ReadingHeaders",
	ReadingBody:              "ReadingBody",
	ReadingChunkedLength:     "ReadingChunkedLength",
	ReadingChunkedBody:       "ReadingChunkedBody",
	ReadingChunkedTerminator: "ReadingChunkedTerminator",
	ReadingTrailerHeaders:    "ReadingTrailerHeaders",
	Completed:                "Completed",
}

func (s State) String() string {
	if int(s) >= len(stateNames) {
		return "Unknown"
	}

	return stateNames[s]
}
