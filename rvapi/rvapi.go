// Package rvapi is the client for the remote commerce service. Calls are
// synchronous and blocking; transport failures come back as wrapped
// errors, application failures as *APIError, and anything outside the
// 2xx/4xx contract as ErrProtocol.
package rvapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

type Config struct {
	APIURL         string `env:"RV_API_URL" envDefault:"http://localhost:4040/api"`
	TerminalSecret string `env:"RV_TERMINAL_SECRET" envDefault:"unsecure"`
}

type Client struct {
	http   *resty.Client
	secret string
}

func NewClient(cfg Config) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(cfg.APIURL),
		secret: cfg.TerminalSecret,
	}
}

func (c *Client) do(method, path string, creds *Credentials, body interface{}) (*resty.Response, error) {
	req := c.http.R()
	if creds != nil {
		req.SetAuthToken(creds.AccessToken)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	return resp, nil
}

func parse(resp *resty.Response, out interface{}) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Wrapf(ErrProtocol, "malformed body from %s: %v", resp.Request.URL, err)
	}
	return nil
}

// Login authenticates with typed credentials.
func (c *Client) Login(username, password string) (*Credentials, error) {
	resp, err := c.do(http.MethodPost, "/v1/authenticate", nil, map[string]string{
		"username":         username,
		"password":         password,
		"rvTerminalSecret": c.secret,
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp, map[int]string{
		http.StatusUnauthorized: "invalid username or password",
		http.StatusBadRequest:   "invalid username or password",
	}); err != nil {
		return nil, err
	}
	creds := &Credentials{}
	if err := parse(resp, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// LoginScan authenticates with a scanned card credential. ErrNoMatch
// means no account is bound to the code; it is not a transport failure.
func (c *Client) LoginScan(code string) (*Credentials, error) {
	resp, err := c.do(http.MethodPost, "/v1/authenticate/rfid", nil, map[string]string{
		"rfid":             code,
		"rvTerminalSecret": c.secret,
	})
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode() == http.StatusOK:
		creds := &Credentials{}
		if err := parse(resp, creds); err != nil {
			return nil, err
		}
		return creds, nil
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500:
		return nil, ErrNoMatch
	default:
		return nil, errors.Wrapf(ErrProtocol, "scan login returned %d", resp.StatusCode())
	}
}

func (c *Client) UserExists(username string) (bool, error) {
	resp, err := c.do(http.MethodPost, "/v1/user/user_exists", nil, map[string]string{
		"username": username,
	})
	if err != nil {
		return false, err
	}
	if err := classify(resp, nil); err != nil {
		return false, err
	}
	var body struct {
		Exists bool `json:"exists"`
	}
	if err := parse(resp, &body); err != nil {
		return false, err
	}
	return body.Exists, nil
}

func (c *Client) Register(username, password, fullName, email string) error {
	resp, err := c.do(http.MethodPost, "/v1/register", nil, map[string]string{
		"username": username,
		"password": password,
		"fullName": fullName,
		"email":    email,
	})
	if err != nil {
		return err
	}
	return classify(resp, nil)
}

func (c *Client) UserInfo(creds *Credentials) (*UserInfo, error) {
	resp, err := c.do(http.MethodGet, "/v1/user", creds, nil)
	if err != nil {
		return nil, err
	}
	if err := classify(resp, nil); err != nil {
		return nil, err
	}
	var body struct {
		User UserInfo `json:"user"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

func (c *Client) UserByUsername(creds *Credentials, username string) (*UserInfo, error) {
	resp, err := c.do(http.MethodGet, "/v1/admin/utils/getUserByUsername/"+username, creds, nil)
	if err != nil {
		return nil, err
	}
	if err := classify(resp, map[int]string{
		http.StatusNotFound:     "User with the given username not found",
		http.StatusUnauthorized: "Not authorized",
	}); err != nil {
		return nil, err
	}
	var body struct {
		User UserInfo `json:"user"`
	}
	if err := parse(resp, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

func (c *Client) ChangePassword(creds *Credentials, password string) error {
	resp, err := c.do(http.MethodPost, "/v1/user/changePassword", creds, map[string]string{
		"password": password,
	})
	if err != nil {
		return err
	}
	return classify(resp, map[int]string{
		http.StatusBadRequest:   "Missing or invalid fields in request",
		http.StatusUnauthorized: "Not authorized",
	})
}

func (c *Client) ChangePasswordAdmin(creds *Credentials, userID int, password string) error {
	resp, err := c.do(http.MethodPost,
		"/v1/admin/users/"+strconv.Itoa(userID)+"/changePassword", creds, map[string]string{
			"password": password,
		})
	if err != nil {
		return err
	}
	return classify(resp, map[int]string{
		http.StatusNotFound:     "User with the given username not found",
		http.StatusBadRequest:   "Missing or invalid fields in request",
		http.StatusUnauthorized: "Not authorized",
	})
}

// ChangeScanCode binds a freshly scanned credential to the principal's
// account for future scan logins.
func (c *Client) ChangeScanCode(creds *Credentials, code string) error {
	resp, err := c.do(http.MethodPost, "/v1/user/changeRfid", creds, map[string]string{
		"rfid": code,
	})
	if err != nil {
		return err
	}
	return classify(resp, map[int]string{
		http.StatusBadRequest:   "Missing or invalid fields in request",
		http.StatusUnauthorized: "Not authorized",
	})
}

// Deposit credits amount (minor units) to the account; method is "cash"
// or "banktransfer".
func (c *Client) Deposit(creds *Credentials, amount int, method string) error {
	resp, err := c.do(http.MethodPost, "/v1/user/deposit", creds, map[string]interface{}{
		"amount": amount,
		"type":   method,
	})
	if err != nil {
		return err
	}
	return classify(resp, nil)
}
