// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
// The channel count and rate come from the stream header; samples are
// already float32 and pass through without conversion.
package vorbis
