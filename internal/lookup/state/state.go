// Package state holds the per-user lookup slice shared by the insurance and
// challan features: recent searches, saved reports, the request state and
// the last successful result.
//
// State values are immutable. Reduce is a pure function from (State, Action)
// to a new State, and Store serializes dispatches for one owner.
package state

// Phase is the request lifecycle derived from RequestState and current data.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// RequestState tracks the in-flight request. Loading and Error are never
// both set after a reducer step.
type RequestState struct {
	Loading bool
	Error   string
}

// State is one owner's slice for a single lookup domain.
type State[R Report] struct {
	Recent  SearchCache
	Saved   ReportStore[R]
	Request RequestState

	current    R
	hasCurrent bool
}

// New returns an empty state with the given caps. Non-positive caps fall back
// to the defaults (5 recent searches, 10 saved reports).
func New[R Report](maxRecent, maxSaved int) State[R] {
	return State[R]{
		Recent: NewSearchCache(maxRecent),
		Saved:  NewReportStore[R](maxSaved),
	}
}

// Current returns the last successful lookup result.
func (s State[R]) Current() (R, bool) {
	return s.current, s.hasCurrent
}

func (s State[R]) Phase() Phase {
	switch {
	case s.Request.Loading:
		return PhaseLoading
	case s.Request.Error != "":
		return PhaseError
	case s.hasCurrent:
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

// ActionKind enumerates the slice's operations.
type ActionKind int

const (
	ActionAddRecentSearch ActionKind = iota + 1
	ActionRemoveRecentSearch
	ActionClearRecentSearches
	ActionSaveReport
	ActionRemoveSavedReport
	ActionClearSavedReports
	ActionSetLoading
	ActionSetError
	ActionClearError
	ActionSetData
	ActionClearData
)

var actionNames = map[ActionKind]string{
	ActionAddRecentSearch:     "add_recent_search",
	ActionRemoveRecentSearch:  "remove_recent_search",
	ActionClearRecentSearches: "clear_recent_searches",
	ActionSaveReport:          "save_report",
	ActionRemoveSavedReport:   "remove_saved_report",
	ActionClearSavedReports:   "clear_saved_reports",
	ActionSetLoading:          "set_loading",
	ActionSetError:            "set_error",
	ActionClearError:          "clear_error",
	ActionSetData:             "set_data",
	ActionClearData:           "clear_data",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "unknown"
}

// Action is a single state transition. Only the fields relevant to Kind are read.
type Action[R Report] struct {
	Kind    ActionKind
	ID      string
	Report  R
	Loading bool
	Error   string
}

func AddRecentSearch[R Report](id string) Action[R] {
	return Action[R]{Kind: ActionAddRecentSearch, ID: id}
}

func RemoveRecentSearch[R Report](id string) Action[R] {
	return Action[R]{Kind: ActionRemoveRecentSearch, ID: id}
}

func ClearRecentSearches[R Report]() Action[R] {
	return Action[R]{Kind: ActionClearRecentSearches}
}

func SaveReport[R Report](report R) Action[R] {
	return Action[R]{Kind: ActionSaveReport, Report: report}
}

func RemoveSavedReport[R Report](key string) Action[R] {
	return Action[R]{Kind: ActionRemoveSavedReport, ID: key}
}

func ClearSavedReports[R Report]() Action[R] {
	return Action[R]{Kind: ActionClearSavedReports}
}

func SetLoading[R Report](loading bool) Action[R] {
	return Action[R]{Kind: ActionSetLoading, Loading: loading}
}

func SetError[R Report](msg string) Action[R] {
	return Action[R]{Kind: ActionSetError, Error: msg}
}

func ClearError[R Report]() Action[R] {
	return Action[R]{Kind: ActionClearError}
}

func SetData[R Report](report R) Action[R] {
	return Action[R]{Kind: ActionSetData, Report: report}
}

func ClearData[R Report]() Action[R] {
	return Action[R]{Kind: ActionClearData}
}

// Reduce applies a to s and returns the resulting state. Unknown kinds leave
// the state unchanged.
func Reduce[R Report](s State[R], a Action[R]) State[R] {
	switch a.Kind {
	case ActionAddRecentSearch:
		s.Recent = s.Recent.Add(a.ID)
	case ActionRemoveRecentSearch:
		s.Recent = s.Recent.Remove(a.ID)
	case ActionClearRecentSearches:
		s.Recent = s.Recent.Clear()
	case ActionSaveReport:
		s.Saved = s.Saved.Save(a.Report)
	case ActionRemoveSavedReport:
		s.Saved = s.Saved.Remove(a.ID)
	case ActionClearSavedReports:
		s.Saved = s.Saved.Clear()
	case ActionSetLoading:
		s.Request.Loading = a.Loading
		if a.Loading {
			s.Request.Error = ""
		}
	case ActionSetError:
		s.Request = RequestState{Loading: false, Error: a.Error}
	case ActionClearError:
		s.Request.Error = ""
	case ActionSetData:
		s.Request = RequestState{}
		s.current = a.Report
		s.hasCurrent = true
	case ActionClearData:
		var zero R
		s.current = zero
		s.hasCurrent = false
	}
	return s
}
