package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/gsapi/internal/client/models"
	"github.com/dmitrijs2005/gsapi/internal/client/session"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*************
 * Fake transport
 *************/

type reply struct {
	status int
	body   string
	err    error
}

type fakeTransport struct {
	replies  []reply
	requests []*Request
}

func (f *fakeTransport) Send(_ context.Context, req *Request) (*Response, error) {
	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return &Response{StatusCode: http.StatusOK, Body: []byte(`{"ok":true}`)}, nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &Response{StatusCode: r.status, Body: []byte(r.body)}, nil
}

func (f *fakeTransport) last(t *testing.T) *Request {
	t.Helper()
	require.NotEmpty(t, f.requests, "no request was sent")
	return f.requests[len(f.requests)-1]
}

func newTestClient(replies ...reply) (*Client, *fakeTransport) {
	ft := &fakeTransport{replies: replies}
	return New("https://api.example.test/", ft, session.NewStore(), nil), ft
}

func ok(body string) reply { return reply{status: http.StatusOK, body: body} }

func requireAPIError(t *testing.T, err error) *Error {
	t.Helper()
	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr), "expected *Error, got %T: %v", err, err)
	return apiErr
}

/*************
 * Scenarios
 *************/

func TestLogin_MergesNormalizedUser(t *testing.T) {
	c, ft := newTestClient(ok(`{"ok":true,"data":{"user":{"username":"Bob","email":"a@b.com","emailpublic":"1","emailchecked":"0"}}}`))

	p, err := c.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	req := ft.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.example.test/login", req.URL)
	assert.JSONEq(t, `{"email":"a@b.com","pass":"secret"}`, string(req.Body))

	u := c.Store().User()
	assert.Equal(t, models.Some("bob"), u.UsernameLow)
	assert.Equal(t, models.Some(true), u.EmailPublic)
	assert.Equal(t, models.Some(false), u.EmailChecked)
	assert.Equal(t, u, p.User)
}

func TestSaveComposition_NonJSONBodyIs500(t *testing.T) {
	c, _ := newTestClient(ok("Fatal error in application"))

	_, err := c.SaveComposition(context.Background(), models.Composition{ID: "1", Data: map[string]any{}})

	e := requireAPIError(t, err)
	assert.Equal(t, 500, e.Code)
	assert.Equal(t, "Fatal error in application", e.Message)
}

func TestSignup_DuplicateEmailTranslated(t *testing.T) {
	c, ft := newTestClient(reply{status: http.StatusConflict, body: `{"ok":false,"code":409,"msg":"email:duplicate"}`})

	_, err := c.Signup(context.Background(), "bob", "a@b.com", "secret")

	e := requireAPIError(t, err)
	assert.Equal(t, 409, e.Code)
	assert.Equal(t, "This email is already used", e.Message)
	assert.JSONEq(t, `{"username":"bob","email":"a@b.com","pass":"secret"}`, string(ft.last(t).Body))
	assert.True(t, c.Store().User().IsEmpty())
}

/*************
 * Request construction
 *************/

func TestFetch_Headers(t *testing.T) {
	c, ft := newTestClient()

	_, err := c.GetMe(context.Background())
	require.NoError(t, err)

	req := ft.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "https://api.example.test/getMe", req.URL)
	assert.Nil(t, req.Body)
	assert.Equal(t, "application/json; charset=utf-8", req.Header["Content-Type"])
	_, err = uuid.Parse(req.Header[requestIDHeader])
	assert.NoError(t, err)
}

func TestFetch_RequestIDsDiffer(t *testing.T) {
	c, ft := newTestClient()
	ctx := context.Background()

	_, _ = c.GetMe(ctx)
	_, _ = c.GetMe(ctx)

	require.Len(t, ft.requests, 2)
	assert.NotEqual(t, ft.requests[0].Header[requestIDHeader], ft.requests[1].Header[requestIDHeader])
}

func TestNew_AddsTrailingSlash(t *testing.T) {
	ft := &fakeTransport{}
	c := New("https://api.example.test", ft, nil, nil)

	_, err := c.DeleteComposition(context.Background(), "7")
	require.NoError(t, err)

	req := ft.last(t)
	assert.Equal(t, "https://api.example.test/deleteComposition", req.URL)
	assert.JSONEq(t, `{"id":"7"}`, string(req.Body))
	assert.NotNil(t, c.Store())
}

/*************
 * Failure channel
 *************/

func TestTransportErrorReturnedUnmodified(t *testing.T) {
	netErr := errors.New("connection refused")
	c, _ := newTestClient(reply{err: netErr})

	_, err := c.Login(context.Background(), "a@b.com", "p")

	require.Same(t, netErr, err)
	assert.True(t, c.Store().User().IsEmpty())
}

func TestFailureLeavesStoreInLastMergedState(t *testing.T) {
	c, _ := newTestClient(
		ok(`{"ok":true,"data":{"user":{"username":"Bob","email":"a@b.com"}}}`),
		ok(`{"ok":false,"code":400,"msg":"email:bad-format"}`),
		ok(`{"ok":true,"data":{"user":{"firstname":"Robert"}}}`),
	)
	ctx := context.Background()

	_, err := c.GetMe(ctx)
	require.NoError(t, err)

	_, err = c.UpdateMyInfo(ctx, ProfileUpdate{Email: models.Some("nope")})
	e := requireAPIError(t, err)
	assert.Equal(t, "The email is not correct", e.Message)
	assert.Equal(t, "a@b.com", c.Store().User().Email.Value)

	_, err = c.UpdateMyInfo(ctx, ProfileUpdate{Firstname: models.Some("Robert")})
	require.NoError(t, err)
	u := c.Store().User()
	assert.Equal(t, "Robert", u.Firstname.Value)
	assert.Equal(t, "Bob", u.Username.Value)
}

func TestMalformedPayloadIs500(t *testing.T) {
	c, _ := newTestClient(ok(`{"ok":true,"data":{"user":42}}`))

	_, err := c.GetMe(context.Background())

	e := requireAPIError(t, err)
	assert.Equal(t, 500, e.Code)
	assert.Contains(t, e.Message, "getMe")
}

func TestBadCompositionPayloadIs500AndStoreUntouched(t *testing.T) {
	c, _ := newTestClient(ok(`{"ok":true,"data":{"user":{"username":"Bob"},"compositions":[{"id":"1","data":"{broken"}]}}`))

	_, err := c.GetMe(context.Background())

	e := requireAPIError(t, err)
	assert.Equal(t, 500, e.Code)
	assert.True(t, c.Store().User().IsEmpty())
	assert.Empty(t, c.Store().Compositions())
}

/*************
 * Operations
 *************/

func TestGetMe_MergesUserAndCompositions(t *testing.T) {
	c, _ := newTestClient(ok(`{"ok":true,"data":{
		"user":{"id":"3","username":"Alice","email":"al@ice.io","emailpublic":"0","emailchecked":"1"},
		"compositions":[{"id":"c1","iduser":"3","data":"{\"name\":\"first\",\"bpm\":140}"}]}}`))

	p, err := c.GetMe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "alice", p.User.UsernameLow.Value)
	require.Len(t, p.Compositions, 1)
	want := map[string]any{"name": "first", "bpm": float64(140)}
	assert.Empty(t, cmp.Diff(want, p.Compositions[0].Data))
	assert.Empty(t, cmp.Diff(p.Compositions, c.Store().Compositions()))
}

func TestGetUser_DoesNotTouchStore(t *testing.T) {
	c, ft := newTestClient(ok(`{"ok":true,"data":{
		"user":{"username":"Some One","emailpublic":"1"},
		"compositions":[{"id":"x","data":"{\"a\":[1]}"}]}}`))

	p, err := c.GetUser(context.Background(), "Some One")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.test/getUser?username=Some+One", ft.last(t).URL)
	assert.Equal(t, http.MethodGet, ft.last(t).Method)
	assert.Equal(t, "some one", p.User.UsernameLow.Value)
	require.Len(t, p.Compositions, 1)
	assert.Equal(t, []any{float64(1)}, p.Compositions[0].Data["a"])

	assert.True(t, c.Store().User().IsEmpty())
	assert.Empty(t, c.Store().Compositions())
}

func TestGetUser_MissingUserIs500(t *testing.T) {
	c, _ := newTestClient(ok(`{"ok":true,"data":{"compositions":[]}}`))

	_, err := c.GetUser(context.Background(), "ghost")

	assert.Equal(t, 500, requireAPIError(t, err).Code)
}

func TestSaveComposition_EncodesDataAndLeavesStore(t *testing.T) {
	c, ft := newTestClient(ok(`{"ok":true,"data":{"id":"c9"}}`))
	cmpIn := models.Composition{
		ID:   "c9",
		Data: map[string]any{"name": "song", "tracks": []any{map[string]any{"vol": 0.5}}},
	}

	data, err := c.SaveComposition(context.Background(), cmpIn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c9"}`, string(data))

	var body map[string]any
	require.NoError(t, json.Unmarshal(ft.last(t).Body, &body))
	encoded, isString := body["composition"].(string)
	require.True(t, isString, "composition must be sent as an encoded string")

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &sent))
	assert.Empty(t, cmp.Diff(cmpIn.Data, sent))

	assert.Empty(t, c.Store().Compositions())
}

func TestSaveComposition_DataSurvivesGetMe(t *testing.T) {
	c, ft := newTestClient(ok(`{"ok":true}`))
	cmpIn := models.Composition{
		ID:   "c1",
		Data: map[string]any{"id": "c1", "name": "song", "bpm": float64(120)},
	}

	_, err := c.SaveComposition(context.Background(), cmpIn)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(ft.last(t).Body, &body))
	stored, err := json.Marshal(body["composition"])
	require.NoError(t, err)

	ft.replies = []reply{ok(`{"ok":true,"data":{"user":{"id":"u1"},"compositions":[{"id":"c1","data":` + string(stored) + `}]}}`)}
	_, err = c.GetMe(context.Background())
	require.NoError(t, err)

	got := c.Store().Compositions()
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
	assert.Empty(t, cmp.Diff(cmpIn.Data, got[0].Data))
}

func TestUpdateMyInfo_SendsOnlyPresentFields(t *testing.T) {
	c, ft := newTestClient(ok(`{"ok":true,"data":{"user":{"emailpublic":"1","lastname":""}}}`))

	p, err := c.UpdateMyInfo(context.Background(), ProfileUpdate{
		Lastname:    models.Some(""),
		EmailPublic: models.Some(true),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"lastname":"","emailpublic":true}`, string(ft.last(t).Body))
	assert.Equal(t, models.Some(true), p.User.EmailPublic)
	assert.Equal(t, models.Some(""), p.User.Lastname)
}

func TestLogout_ClearsUserKeepsCompositions(t *testing.T) {
	c, ft := newTestClient(
		ok(`{"ok":true,"data":{"user":{"username":"Bob","email":"a@b.com"},"compositions":[{"id":"1","data":"{}"}]}}`),
		ok(`{"ok":true}`),
	)
	ctx := context.Background()

	_, err := c.GetMe(ctx)
	require.NoError(t, err)

	_, err = c.Logout(ctx)
	require.NoError(t, err)

	assert.JSONEq(t, `{"confirm":true}`, string(ft.last(t).Body))
	assert.Empty(t, c.Store().User().Fields())
	assert.Len(t, c.Store().Compositions(), 1)
}

func TestLogout_FailureKeepsUser(t *testing.T) {
	c, _ := newTestClient(
		ok(`{"ok":true,"data":{"user":{"username":"Bob"}}}`),
		ok(`{"ok":false,"code":401,"msg":"user:not-connected"}`),
	)
	ctx := context.Background()
	_, err := c.Login(ctx, "a", "b")
	require.NoError(t, err)

	_, err = c.Logout(ctx)

	require.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, "Bob", c.Store().User().Username.Value)
}

func TestResendConfirmationEmail(t *testing.T) {
	t.Run("without email no request is sent", func(t *testing.T) {
		c, ft := newTestClient()

		_, err := c.ResendConfirmationEmail(context.Background())

		require.ErrorIs(t, err, ErrNotConnected)
		assert.Empty(t, ft.requests)
	})

	t.Run("uses the stored email", func(t *testing.T) {
		c, ft := newTestClient(ok(`{"ok":true,"data":{"user":{"email":"a@b.com"}}}`), ok(`{"ok":true}`))
		ctx := context.Background()
		_, err := c.GetMe(ctx)
		require.NoError(t, err)

		_, err = c.ResendConfirmationEmail(ctx)
		require.NoError(t, err)

		req := ft.last(t)
		assert.Equal(t, "https://api.example.test/resendConfirmationEmail", req.URL)
		assert.JSONEq(t, `{"email":"a@b.com"}`, string(req.Body))
	})
}

func TestPasswordRecovery(t *testing.T) {
	c, ft := newTestClient(
		ok(`{"ok":true}`),
		ok(`{"ok":false,"code":400,"msg":"password:bad-code"}`),
	)
	ctx := context.Background()

	_, err := c.RecoverPassword(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test/recoverPassword", ft.last(t).URL)
	assert.JSONEq(t, `{"email":"a@b.com"}`, string(ft.last(t).Body))

	_, err = c.ResetPassword(ctx, "a@b.com", "123", "newpass")
	e := requireAPIError(t, err)
	assert.Equal(t, ErrorTable["password:bad-code"], e.Message)
	assert.JSONEq(t, `{"email":"a@b.com","code":"123","pass":"newpass"}`, string(ft.last(t).Body))
}

func TestIndependentClientsHaveIndependentStores(t *testing.T) {
	a, _ := newTestClient(ok(`{"ok":true,"data":{"user":{"username":"A"}}}`))
	b, _ := newTestClient()

	_, err := a.GetMe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "A", a.Store().User().Username.Value)
	assert.True(t, b.Store().User().IsEmpty())
}
