package email

import (
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageOffSwitch(t *testing.T) {
	recipients := []string{"ops@pullus.example"}

	e := SendMessage(ProviderSes, nil, "reports@pullus.example", recipients, "Dashboard", "text", "", nil)
	assert.Nil(t, e)

	off := false
	e = SendMessage(ProviderSes, &off, "reports@pullus.example", recipients, "Dashboard", "text", "", nil)
	assert.Nil(t, e)
}

func TestSendMessageUnknownProvider(t *testing.T) {
	on := true
	e := SendMessage(Provider("carrier-pigeon"), &on, "reports@pullus.example", []string{"ops@pullus.example"}, "Dashboard", "text", "", nil)
	require.NotNil(t, e)
}

func TestRequiredEnvPerProvider(t *testing.T) {
	assert.Equal(t, []string{"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION"}, RequiredEnv(ProviderSes))
	assert.Equal(t, []string{"SENDGRID_API_KEY"}, RequiredEnv(ProviderSendgrid))
	assert.Equal(t, []string{"MAILGUN_DOMAIN", "MAILGUN_API_KEY"}, RequiredEnv(ProviderMailgun))
	assert.Nil(t, RequiredEnv(Provider("smoke-signal")))
}

func TestSendgridStatusError(t *testing.T) {
	assert.Nil(t, sendgridStatusError(&rest.Response{StatusCode: 202}, "Dashboard"))
	assert.NotNil(t, sendgridStatusError(&rest.Response{StatusCode: 401, Body: "denied"}, "Dashboard"))
}
