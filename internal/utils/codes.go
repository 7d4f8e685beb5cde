package utils

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// NewOTPCode: равномерно случайный 6-значный код в [100000, 999999],
// ведущих нулей не бывает по построению.
func NewOTPCode() (string, error) {
	return newOTPCodeFrom(rand.Reader)
}

func newOTPCodeFrom(r io.Reader) (string, error) {
	n, err := rand.Int(r, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}
