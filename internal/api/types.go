package api

// Policy is a single policy record as returned by the listing endpoint.
type Policy struct {
	UID               string        `json:"uid"`
	DisplayName       string        `json:"displayName"`
	RiskType          string        `json:"riskType"`
	Severity          string        `json:"severity"`
	PolicyGroups      []PolicyGroup `json:"policyGroups"`
	ActiveIssuesCount int           `json:"activeIssuesCount"`
	CreatedBy         string        `json:"createdBy"`
	IsEnabled         bool          `json:"isEnabled"`
	Description       string        `json:"description"`
}

// PolicyGroup is a named collection a policy belongs to.
type PolicyGroup struct {
	Name string `json:"name"`
}

// GroupNames returns the names of the policy's groups in order.
func (p Policy) GroupNames() []string {
	names := make([]string, 0, len(p.PolicyGroups))
	for _, g := range p.PolicyGroups {
		names = append(names, g.Name)
	}
	return names
}

// Credentials is the client id / secret pair exchanged for a session token.
type Credentials struct {
	ClientID string
	Secret   string
}

// Page is one page of the policy listing.
type Page struct {
	Number     int
	TotalPages int
	Policies   []Policy
}

// loginRequest is the body sent to the login endpoint.
type loginRequest struct {
	ClientID string `json:"clientId"`
	Secret   string `json:"secret"`
}

// loginResponse uses a pointer so an absent jwt is distinguishable from an empty one.
type loginResponse struct {
	JWT *string `json:"jwt"`
}

type pageMeta struct {
	TotalPages *int `json:"totalPages"`
}

type pageResponse struct {
	Policies []Policy  `json:"policies"`
	Meta     *pageMeta `json:"meta"`
}
