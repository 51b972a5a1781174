// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors with actionable context:
// what operation failed, which resource was involved, and suggestions
// for fixing the problem.
package issue
