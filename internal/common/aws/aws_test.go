// internal/common/aws/aws_test.go
package aws

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextEmail(t *testing.T) {
	in := TextEmail("intake@example.org", "reviewer@example.org", "New application", "Auto score: 18/25")

	assert.Equal(t, "intake@example.org", aws.ToString(in.Source))
	assert.Equal(t, []string{"reviewer@example.org"}, in.Destination.ToAddresses)
	assert.Equal(t, "New application", aws.ToString(in.Message.Subject.Data))
	require.NotNil(t, in.Message.Body.Text)
	assert.Equal(t, "Auto score: 18/25", aws.ToString(in.Message.Body.Text.Data))
	assert.Nil(t, in.Message.Body.Html)
}

func TestTransactionalSMS(t *testing.T) {
	in := TransactionalSMS("+15550100", "High priority application", "CHURCH")

	assert.Equal(t, "+15550100", aws.ToString(in.PhoneNumber))
	assert.Equal(t, "High priority application", aws.ToString(in.Message))
	assert.Equal(t, "Transactional", aws.ToString(in.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue))
	assert.Equal(t, "CHURCH", aws.ToString(in.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
}

func TestTransactionalSMS_TruncatesAndOmitsEmptySender(t *testing.T) {
	in := TransactionalSMS("+15550100", strings.Repeat("x", 400), "")

	msg := aws.ToString(in.Message)
	assert.Len(t, []rune(msg), MaxSMSLength)
	assert.True(t, strings.HasSuffix(msg, "..."))
	_, hasSender := in.MessageAttributes["AWS.SNS.SMS.SenderID"]
	assert.False(t, hasSender)
}
