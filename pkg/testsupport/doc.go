// Package testsupport holds fixture helpers shared by package tests.
package testsupport
