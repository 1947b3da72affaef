package handler

import (
	"motorhub/internal/lookup/state"
	id "motorhub/pkg/domain"
	"motorhub/pkg/validation"
)

// RegistrationRequest is the body of search and save requests.
type RegistrationRequest struct {
	Registration string `json:"registration" validate:"required,registration"`
}

func (r *RegistrationRequest) Normalize() {
	r.Registration = id.NormalizeRegistration(r.Registration)
}

func (r *RegistrationRequest) Validate() error {
	return validation.Validate(r)
}

// StateResponse mirrors one owner's slice.
type StateResponse[R state.Report] struct {
	Status         state.Phase `json:"status"`
	IsLoading      bool        `json:"is_loading"`
	Error          *string     `json:"error"`
	CurrentData    *R          `json:"current_data"`
	RecentSearches []string    `json:"recent_searches"`
	SavedReports   []R         `json:"saved_reports"`
}

type RecentResponse struct {
	RecentSearches []string `json:"recent_searches"`
}

type SavedResponse[R state.Report] struct {
	SavedReports []R `json:"saved_reports"`
}

type ReportResponse[R state.Report] struct {
	Report R `json:"report"`
}

func toStateResponse[R state.Report](st state.State[R]) StateResponse[R] {
	resp := StateResponse[R]{
		Status:         st.Phase(),
		IsLoading:      st.Request.Loading,
		RecentSearches: st.Recent.Items(),
		SavedReports:   st.Saved.Items(),
	}
	if st.Request.Error != "" {
		msg := st.Request.Error
		resp.Error = &msg
	}
	if current, ok := st.Current(); ok {
		resp.CurrentData = &current
	}
	if resp.RecentSearches == nil {
		resp.RecentSearches = []string{}
	}
	if resp.SavedReports == nil {
		resp.SavedReports = []R{}
	}
	return resp
}
