//go:build !amd64 || purego

package cryptonight

const hasHardwareAES = false

var aesHardware = aesSoftware
