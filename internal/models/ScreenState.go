package models

type Phase int

const (
	PhaseInitial Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// ScreenState is what the screen renders. Phase selects which of the
// remaining fields are meaningful: Current and Daily for PhaseSuccess,
// Message for PhaseError. Sequence is the query that produced the state,
// zero before the first query.
//
// Published states are never modified; a transition publishes a new value.
type ScreenState struct {
	Phase    Phase
	Sequence uint64
	Current  *CurrentWeatherResponse
	Daily    []DailyForecast
	Message  string
}

func InitialState() ScreenState {
	return ScreenState{Phase: PhaseInitial}
}

func LoadingState(seq uint64) ScreenState {
	return ScreenState{Phase: PhaseLoading, Sequence: seq}
}

func SuccessState(seq uint64, current *CurrentWeatherResponse, daily []DailyForecast) ScreenState {
	return ScreenState{Phase: PhaseSuccess, Sequence: seq, Current: current, Daily: daily}
}

func ErrorState(seq uint64, message string) ScreenState {
	return ScreenState{Phase: PhaseError, Sequence: seq, Message: message}
}
