package authx

import (
	"context"
	"fmt"
	"net/http"

	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/restmachinery"
)

const (
	usersPath               = "/user"
	emailDoubleCheckPath    = "/user/email/double-check"
	nicknameDoubleCheckPath = "/user/nickname/double-check"
)

func userPath(id int64) string {
	return fmt.Sprintf("%s/%d", usersPath, id)
}

// User represents a registered user.
type User struct {
	ID           int64  `json:"id,omitempty"`
	Email        string `json:"email,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// UserSignup is everything required to register a new User.
type UserSignup struct {
	Email        string
	Password     string
	Nickname     string
	ProfileImage *restmachinery.File
}

// ProfileUpdate describes changes to a User's profile. ProfileImage may be nil
// to keep the current image; OldFileName names the image being replaced.
type ProfileUpdate struct {
	Nickname     string
	OldFileName  string
	ProfileImage *restmachinery.File
}

// availability is the API server's answer to an email or nickname
// double-check.
type availability struct {
	Available bool `json:"available"`
}

// UsersClient is the specialized client for managing Users.
type UsersClient interface {
	// Create registers a new User.
	Create(context.Context, UserSignup) (User, error)
	// Get retrieves a single User specified by their identifier.
	Get(context.Context, int64) (User, error)
	// Update changes the profile of the User specified by their identifier and
	// returns the User as amended.
	Update(context.Context, int64, ProfileUpdate) (User, error)
	// Delete removes the User specified by their identifier.
	Delete(context.Context, int64) error
	// UpdatePassword changes the password of the User specified by their
	// identifier.
	UpdatePassword(ctx context.Context, id int64, password string) error

	// CheckEmail returns true if the given email address is not yet
	// registered.
	CheckEmail(ctx context.Context, email string) (bool, error)
	// CheckNickname returns true if the given nickname is not yet taken.
	CheckNickname(ctx context.Context, nickname string) (bool, error)
}

type usersClient struct {
	*restmachinery.BaseClient
}

// NewUsersClient returns a specialized client for managing Users.
func NewUsersClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) UsersClient {
	return NewUsersClientWithBaseClient(
		restmachinery.NewBaseClient(apiAddress, opts),
	)
}

// NewUsersClientWithBaseClient returns a specialized client for managing Users
// that shares the given BaseClient, and therefore its session.
func NewUsersClientWithBaseClient(
	baseClient *restmachinery.BaseClient,
) UsersClient {
	return &usersClient{
		BaseClient: baseClient,
	}
}

func (u *usersClient) Create(
	ctx context.Context,
	signup UserSignup,
) (User, error) {
	user := User{}
	err := u.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPost, usersPath).
			WithJSONBody(
				map[string]interface{}{
					"email":        signup.Email,
					"password":     signup.Password,
					"nickname":     signup.Nickname,
					"profileImage": signup.ProfileImage,
				},
			).
			AsMultipart(),
		&meta.Envelope{Data: &user},
	)
	return user, err
}

func (u *usersClient) Get(ctx context.Context, id int64) (User, error) {
	user := User{}
	err := u.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodGet, userPath(id)),
		&meta.Envelope{Data: &user},
	)
	return user, err
}

func (u *usersClient) Update(
	ctx context.Context,
	id int64,
	update ProfileUpdate,
) (User, error) {
	user := User{}
	err := u.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPatch, userPath(id)).
			WithJSONBody(
				map[string]interface{}{
					"nickname":     update.Nickname,
					"oldFileName":  update.OldFileName,
					"profileImage": update.ProfileImage,
				},
			).
			AsMultipart(),
		&meta.Envelope{Data: &user},
	)
	return user, err
}

func (u *usersClient) Delete(ctx context.Context, id int64) error {
	_, err := u.SubmitRequest(
		ctx,
		restmachinery.NewRequest(http.MethodDelete, userPath(id)),
	)
	return err
}

func (u *usersClient) UpdatePassword(
	ctx context.Context,
	id int64,
	password string,
) error {
	_, err := u.SubmitRequest(
		ctx,
		restmachinery.NewRequest(
			http.MethodPatch,
			fmt.Sprintf("%s/password", userPath(id)),
		).WithJSONBody(map[string]interface{}{"password": password}),
	)
	return err
}

func (u *usersClient) CheckEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	return u.checkAvailability(ctx, emailDoubleCheckPath, "email", email)
}

func (u *usersClient) CheckNickname(
	ctx context.Context,
	nickname string,
) (bool, error) {
	return u.checkAvailability(
		ctx,
		nicknameDoubleCheckPath,
		"nickname",
		nickname,
	)
}

func (u *usersClient) checkAvailability(
	ctx context.Context,
	path string,
	field string,
	value string,
) (bool, error) {
	result := availability{}
	err := u.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPost, path).
			WithJSONBody(map[string]interface{}{field: value}),
		&meta.Envelope{Data: &result},
	)
	return result.Available, err
}
