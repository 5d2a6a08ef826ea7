// Package layout implements the two-pass box solver used by the gui package.
//
// Pass one measures natural sizes bottom-up. Pass two distributes each
// container's main-axis length among its children top-down according to their
// sizing [Policy]: fixed and content-sized children take their length first,
// proportional and inflate children share what is left, and when the fixed
// demand exceeds the container every child shrinks in proportion to its length.
// A scrolling container lets that demand overflow instead and shifts its
// children by its scroll offset. Leaves implementing [HeightForWidth] get
// their height from the width a vertical container gives them.
// Types are re-exported through the root gui package for public consumption.
//
// The main entry point is [Calculate], which takes a [Layoutable] tree and
// computes absolute [Rect] positions for each node. Only dirty subtrees, or
// subtrees whose allotted slot changed, are recomputed.
package layout
