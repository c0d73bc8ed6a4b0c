package utils

import (
	"crypto/rand"
)

const (
	// IDLength là độ dài của ID (12 ký tự)
	IDLength = 12
	// IDCharset là bộ ký tự được sử dụng để tạo ID (a-zA-Z0-9)
	IDCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// maxUnbiased là bội số lớn nhất của len(IDCharset) không vượt quá 256.
// Byte >= maxUnbiased bị bỏ qua để mọi ký tự có xác suất như nhau.
const maxUnbiased = 256 - 256%len(IDCharset)

// GenerateID tạo một ID ngẫu nhiên 12 ký tự từ a-zA-Z0-9 bằng crypto/rand
func GenerateID() (string, error) {
	result := make([]byte, 0, IDLength)
	buf := make([]byte, IDLength*2)

	for len(result) < IDLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			result = append(result, IDCharset[int(b)%len(IDCharset)])
			if len(result) == IDLength {
				break
			}
		}
	}

	return string(result), nil
}
