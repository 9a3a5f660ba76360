package apierr

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponseByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   Kind
	}{
		{"unauthorized", 401, `{"status":"fail","message":"Unauthorized"}`, KindAuthentication},
		{"forbidden", 403, `{"message":"no access"}`, KindAuthorization},
		{"not found", 404, `{"message":"missing"}`, KindNotFound},
		{"method not allowed", 405, `{"message":"nope"}`, KindMethodNotAllowed},
		{"rate limited", 429, `{"message":"slow down"}`, KindRateLimit},
		{"bad request", 400, `{"message":"bad"}`, KindValidation},
		{"unprocessable", 422, `{"message":"bad"}`, KindValidation},
		{"server", 503, `{"message":"down"}`, KindServer},
		{"conflict", 409, `{"message":"dup"}`, KindAPI},
		{"html server error", 502, `<html>Bad Gateway</html>`, KindServer},
		{"html unauthorized", 401, `<html>login</html>`, KindAuthentication},
		{"list body", 404, `[{"message":"gone"}]`, KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(tt.status, http.Header{}, []byte(tt.body))
			require.NotNil(t, err)
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, []byte(tt.body), err.Body)
		})
	}
}

func TestFromResponseSuccess(t *testing.T) {
	for _, body := range []string{
		`{"status":"ok","code":"EC03100000","result":{}}`,
		`{"status":"00"}`,
		`{"result":[]}`,
		`[{"branchCode":"BR01"}]`,
		``,
		`not json`,
	} {
		assert.Nil(t, FromResponse(200, http.Header{}, []byte(body)), body)
	}
}

func TestFromResponsePreservesValidationMapping(t *testing.T) {
	err := FromResponse(422, http.Header{}, []byte(`{"errors": {"menu_name": ["required"]}}`))

	require.NotNil(t, err)
	require.Equal(t, KindValidation, err.Kind)
	require.NotNil(t, err.ValidationErrors)
	assert.Equal(t, ShapeFields, err.ValidationErrors.Shape())
	assert.Equal(t, map[string][]string{"menu_name": {"required"}}, err.ValidationErrors.Fields)
	assert.Nil(t, err.ValidationErrors.Messages)
}

func TestFromResponsePreservesValidationList(t *testing.T) {
	err := FromResponse(400, http.Header{}, []byte(`{"data":["salesNum is required","branchCode is required"]}`))

	require.NotNil(t, err.ValidationErrors)
	assert.Equal(t, ShapeList, err.ValidationErrors.Shape())
	assert.Equal(t, []string{"salesNum is required", "branchCode is required"}, err.ValidationErrors.Messages)
	assert.Nil(t, err.ValidationErrors.Fields)
}

func TestFromResponseValidationPrefersData(t *testing.T) {
	err := FromResponse(400, http.Header{}, []byte(`{"data":null,"errors":{"qty":"must be positive"}}`))

	require.NotNil(t, err.ValidationErrors)
	assert.Equal(t, []string{"must be positive"}, err.ValidationErrors.Field("qty"))
}

func TestFromResponseRateLimit(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "12")
	err := FromResponse(429, h, []byte(`anything`))

	require.NotNil(t, err)
	assert.Equal(t, KindRateLimit, err.Kind)
	assert.Equal(t, 429, err.StatusCode)
	assert.Equal(t, 12*time.Second, err.RetryAfter)
}

func TestFromResponseServerCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind Kind
	}{
		{"invalid credentials", `{"status":"fail","code":"EC03100001","message":"Invalid username or password"}`, KindAuthentication},
		{"session expired", `{"status":"fail","code":"EC03100032","message":"Session expired"}`, KindAuthentication},
		{"core unauthorized", `{"status":"failed","code":"EC011401","message":"Token invalid"}`, KindAuthentication},
		{"core validation", `{"status":"fail","code":"EC03100003","errors":{"username":["required"]}}`, KindValidation},
		{"not found text", `{"status":"01","code":"EC0110","message":"Branch not found"}`, KindNotFound},
		{"generic request invalid", `{"status":"fail","code":"EC0110","message":"cannot process"}`, KindAPI},
		{"data invalid", `{"status":"fail","code":"EC0118","message":"Invalid data"}`, KindValidation},
		{"bad request code", `{"status":"fail","code":"EC011400","data":{"qty":["invalid"]}}`, KindValidation},
		{"undefined index", `{"status":"fail","code":"X1","message":"Undefined index: salesHead"}`, KindValidation},
		{"unknown", `{"status":"fail","code":"X9","message":"odd"}`, KindAPI},
		{"numeric code", `{"status":"fail","code":500100,"message":"odd"}`, KindAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(200, http.Header{}, []byte(tt.body))
			require.NotNil(t, err)
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, 200, err.StatusCode)
		})
	}
}

func TestFromResponseMessageObject(t *testing.T) {
	body := `{"status":"fail","code":"EC0110","message":"{\"menuCode\":[\"has already been taken\"]}"}`
	err := FromResponse(200, http.Header{}, []byte(body))

	require.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "EC0110", err.Code)
	assert.Equal(t, []string{"has already been taken"}, err.ValidationErrors.Field("menuCode"))
}

func TestFromResponseMessageFallbacks(t *testing.T) {
	err := FromResponse(409, http.Header{}, []byte(`{"error":"duplicate"}`))
	assert.Equal(t, "duplicate", err.Message)

	err = FromResponse(409, http.Header{}, []byte(`{}`))
	assert.Equal(t, "Unknown error", err.Message)

	err = FromResponse(200, http.Header{}, []byte(`{"status":"fail","code":7}`))
	assert.Equal(t, "7", err.Code)
}

func TestParseValidationErrorsRaw(t *testing.T) {
	ve := ParseValidationErrors([]byte(`[{"field":"qty","message":"invalid"}]`))

	require.NotNil(t, ve)
	assert.Equal(t, ShapeRaw, ve.Shape())
	assert.JSONEq(t, `[{"field":"qty","message":"invalid"}]`, string(ve.Raw))

	assert.Nil(t, ParseValidationErrors(nil))
	assert.Nil(t, ParseValidationErrors([]byte(`null`)))
	assert.Nil(t, ParseValidationErrors([]byte(`{}`)))
	assert.Nil(t, ParseValidationErrors([]byte(`[]`)))
}
