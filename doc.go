/*
Package newick provides facilities for reading, writing and manipulating
phylogenetic trees in the Newick format. The format used is roughly
equivalent to the conventions established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html.

Beyond parsing and serialization, the package implements the common
whole-tree operations: rerooting at an arbitrary node, midpoint rooting,
unrooting, least-common-ancestor and patristic distance queries, pairwise
distance matrices, clade-level topology comparison between two trees,
child reordering, and systematic renaming of taxa.

Bracketed comments ([...]) are stripped from the input before parsing and
are never reproduced on output. Quoted labels are kept verbatim, quotes
included.

Trees are mutable: the rooting operations re-link parent and child edges
in place and return the same tree. Nothing in this package is safe for
concurrent mutation of a single tree.
*/
package newick
