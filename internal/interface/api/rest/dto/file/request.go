package file

type (
	// ShareRequest names the user to grant or revoke access for.
	ShareRequest struct {
		Email string `json:"email"`
	}
)
