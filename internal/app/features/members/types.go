package members

type listResponse struct {
	Members []string `json:"members"`
}
