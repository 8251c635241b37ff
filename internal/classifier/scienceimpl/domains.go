package scienceimpl

// scientificDomains is static configuration: hosts that publish scholarly
// content. Matched by exact host or suffix, loaded once and never mutated.
var scientificDomains = []string{
	// Preprint servers
	"arxiv.org",
	"biorxiv.org",
	"medrxiv.org",
	"chemrxiv.org",
	"psyarxiv.org",
	"eartharxiv.org",
	"socarxiv.org",
	"osf.io",
	"preprints.org",
	"ssrn.com",

	// Major publishers
	"nature.com",
	"science.org",
	"sciencemag.org",
	"cell.com",
	"pnas.org",
	"springer.com",
	"link.springer.com",
	"wiley.com",
	"onlinelibrary.wiley.com",
	"tandfonline.com",
	"sciencedirect.com",
	"elsevier.com",
	"academic.oup.com",
	"journals.sagepub.com",
	"bmj.com",
	"nejm.org",
	"pubs.acs.org",
	"pubs.rsc.org",
	"ieee.org",
	"ieeexplore.ieee.org",
	"frontiersin.org",
	"mdpi.com",
	"plos.org",
	"journals.plos.org",
	"jamanetwork.com",
	"thelancet.com",
	"annualreviews.org",
	"jstor.org",
	"dl.acm.org",
	"elifesciences.org",
	"biomedcentral.com",

	// University publishers
	"cambridge.org",
	"press.princeton.edu",
	"press.uchicago.edu",
	"mitpress.mit.edu",

	// Open access and repositories
	"zenodo.org",
	"figshare.com",
	"doaj.org",

	// National institutions and databases
	"nih.gov",
	"ncbi.nlm.nih.gov",
	"pubmed.ncbi.nlm.nih.gov",
	"pmc.ncbi.nlm.nih.gov",
	"cdc.gov",
	"nist.gov",
	"nasa.gov",
	"aip.org",
	"aps.org",
	"ams.org",

	// Identifiers and metrics
	"doi.org",
	"handle.net",
	"researchgate.net",
	"academia.edu",
	"scopus.com",
	"webofscience.com",
	"semanticscholar.org",
	"orcid.org",

	// Field-specific repositories
	"ideas.repec.org",
	"dblp.org",
	"inspirehep.net",
	"projecteuclid.org",
	"geoscienceworld.org",

	// Society publishers
	"agu.org",
	"asme.org",
	"geosociety.org",
	"royalsociety.org",
	"royalsocietypublishing.org",
	"aaas.org",

	// Country-specific journals
	"jstage.jst.go.jp",
	"scielo.org",
	"cairn.info",

	// Medical journals and databases
	"jci.org",
	"annals.org",
	"medscape.com",

	// Research tools
	"mendeley.com",
	"zotero.org",
	"paperpile.com",
	"overleaf.com",
}
