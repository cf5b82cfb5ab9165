package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

// Tolerance is the maximum allowed skew between a webhook's declared
// timestamp and the verifier's clock. Requests outside the window are
// rejected even if the signature itself is valid, which defends against
// replay of captured requests.
const Tolerance = 5 * time.Minute

const version = "v0"

var (
	ErrMissingTimestamp  = errors.New("signature timestamp is required")
	ErrInvalidTimestamp  = errors.New("invalid signature timestamp")
	ErrTimestampExpired  = errors.New("signature timestamp outside allowed skew")
	ErrMissingSignature  = errors.New("signature header is required")
	ErrSignatureMismatch = errors.New("invalid signature")
)

// Verifier validates that an inbound webhook originates from Slack,
// using the signing-secret scheme: HMAC-SHA256 over "v0:<timestamp>:<body>".
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Verify checks the signature over the exact raw bytes received. Body must
// not be re-serialized from a parsed form, that would invalidate the digest.
// A nil return means the request is authentic; callers treat any error as an
// authentication failure, never as a retryable condition.
func (v *Verifier) Verify(timestamp string, body []byte, signature string) error {
	if timestamp == "" {
		return ErrMissingTimestamp
	}
	if signature == "" {
		return ErrMissingSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}

	skew := v.now().Sub(time.Unix(ts, 0))
	if skew > Tolerance || skew < -Tolerance {
		return ErrTimestampExpired
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(version + ":" + timestamp + ":"))
	mac.Write(body)
	expected := version + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}

	return nil
}

// Sign computes the signature Slack would send for the given timestamp and
// body. Exported for tests and local tooling.
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(version + ":" + timestamp + ":"))
	mac.Write(body)
	return version + "=" + hex.EncodeToString(mac.Sum(nil))
}
