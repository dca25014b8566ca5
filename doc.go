/*
Package osufile parses and serializes the osu! beatmap text format.

A beatmap file is a line-oriented document of bracketed sections. Each
section kind has its own record shape and its own, deliberately uneven,
tolerance for malformed input: a garbled timing point is silently
dropped, a garbled hit object aborts the parse, and omitted trailing
fields fill in from documented defaults. This package reproduces those
rules exactly rather than normalizing them.

The entry points mirror the standard library's encoding packages:

	f, err := osufile.Parse(r)
	if err != nil {
		// handle error
	}
	err = osufile.Write(w, f)

A File holds its sections in source order. Known sections decode to
typed records ([]TimingPoint, []HitObject, []Event, metadata *Dict);
unrecognized sections round-trip untouched as raw lines.

For repeated use, build a Parser once and share it; it is immutable
after construction:

	p, err := osufile.New(
		osufile.WithLogger(logger),
	)

Two extension points cover the format's dialects. WithSection registers
a codec for any section name, including replacements for the built-in
ones. WithScalars substitutes the four scalar codecs (int, float, bool,
string) that every built-in section codec is constructed from, which is
the single place numeric text conversion occurs. The combinator
subpackage exposes the primitives used to build field codecs, so custom
sections compose from the same parts as the built-ins.
*/
package osufile
