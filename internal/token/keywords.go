package token

// KeywordVersion selects which dialect's reserved-word set is active.
// The preprocessor keeps a single current version, replaced by each
// “ `begin_keywords “ naming a recognized version; “ `end_keywords “
// does not restore an earlier one, and no stack of versions is kept. Lexer
// consults the version it was created with on every identifier scan.
type KeywordVersion uint8

const (
	// KeywordVersionNone disables keyword recognition entirely: every
	// identifier-shaped lexeme, including ones normally reserved, comes
	// back as Identifier, for LookupKeyword callers that want no keywords.
	// A Lexer whose Options leave KeywordVersion at this zero value uses
	// DefaultKeywordVersion instead.
	KeywordVersionNone KeywordVersion = iota
	KeywordVersion1364_1995
	KeywordVersion1364_2001NoConfig
	KeywordVersion1364_2001
	KeywordVersion1364_2005
	KeywordVersion1800_2005
	KeywordVersion1800_2009
	KeywordVersion1800_2012
	KeywordVersion1800_2017

	// DefaultKeywordVersion is the version used when none is configured.
	DefaultKeywordVersion = KeywordVersion1800_2017
)

// keywordEntry pairs a keyword's Kind with the earliest KeywordVersion it is
// recognized under; it is reserved in every later version too.
type keywordEntry struct {
	kind       Kind
	minVersion KeywordVersion
}

// keywords holds every reserved word across all supported dialects, tagged
// with the version that introduced it. Words not present in any supported
// version are scanned as plain identifiers.
var keywords = map[string]keywordEntry{
	"accept_on":           {KwAcceptOn, KeywordVersion1800_2009},
	"alias":               {KwAlias, KeywordVersion1800_2005},
	"always":              {KwAlways, KeywordVersion1364_1995},
	"always_comb":         {KwAlwaysComb, KeywordVersion1800_2005},
	"always_ff":           {KwAlwaysFF, KeywordVersion1800_2005},
	"always_latch":        {KwAlwaysLatch, KeywordVersion1800_2005},
	"and":                 {KwAnd, KeywordVersion1364_1995},
	"assert":              {KwAssert, KeywordVersion1800_2005},
	"assign":              {KwAssign, KeywordVersion1364_1995},
	"assume":              {KwAssume, KeywordVersion1800_2005},
	"automatic":           {KwAutomatic, KeywordVersion1364_2001},
	"before":              {KwBefore, KeywordVersion1800_2005},
	"begin":               {KwBegin, KeywordVersion1364_1995},
	"bind":                {KwBind, KeywordVersion1800_2005},
	"bins":                {KwBins, KeywordVersion1800_2005},
	"bins_of":             {KwBinsOf, KeywordVersion1800_2005},
	"bit":                 {KwBit, KeywordVersion1800_2005},
	"break":               {KwBreak, KeywordVersion1800_2005},
	"buf":                 {KwBuf, KeywordVersion1364_1995},
	"bufif0":              {KwBufIf0, KeywordVersion1364_1995},
	"bufif1":              {KwBufIf1, KeywordVersion1364_1995},
	"byte":                {KwByte, KeywordVersion1800_2005},
	"case":                {KwCase, KeywordVersion1364_1995},
	"casex":               {KwCasex, KeywordVersion1364_1995},
	"casez":               {KwCasez, KeywordVersion1364_1995},
	"cell":                {KwCell, KeywordVersion1364_2001},
	"chandle":             {KwChandle, KeywordVersion1800_2005},
	"checker":             {KwChecker, KeywordVersion1800_2009},
	"class":               {KwClass, KeywordVersion1800_2005},
	"clocking":            {KwClocking, KeywordVersion1800_2005},
	"cmos":                {KwCmos, KeywordVersion1364_1995},
	"config":              {KwConfig, KeywordVersion1364_2001},
	"const":               {KwConst, KeywordVersion1800_2005},
	"constraint":          {KwConstraint, KeywordVersion1800_2005},
	"context":             {KwContext, KeywordVersion1800_2005},
	"continue":            {KwContinue, KeywordVersion1800_2005},
	"cover":               {KwCover, KeywordVersion1800_2005},
	"covergroup":          {KwCovergroup, KeywordVersion1800_2005},
	"coverpoint":          {KwCoverpoint, KeywordVersion1800_2005},
	"cross":               {KwCross, KeywordVersion1800_2005},
	"deassign":            {KwDeassign, KeywordVersion1364_1995},
	"default":             {KwDefault, KeywordVersion1364_1995},
	"defparam":            {KwDefparam, KeywordVersion1364_1995},
	"design":              {KwDesign, KeywordVersion1364_2001},
	"disable":             {KwDisable, KeywordVersion1364_1995},
	"dist":                {KwDist, KeywordVersion1800_2005},
	"do":                  {KwDo, KeywordVersion1800_2005},
	"edge":                {KwEdge, KeywordVersion1364_1995},
	"else":                {KwElse, KeywordVersion1364_1995},
	"end":                 {KwEnd, KeywordVersion1364_1995},
	"endcase":             {KwEndcase, KeywordVersion1364_1995},
	"endchecker":          {KwEndchecker, KeywordVersion1800_2009},
	"endclass":            {KwEndclass, KeywordVersion1800_2005},
	"endclocking":         {KwEndclocking, KeywordVersion1800_2005},
	"endconfig":           {KwEndconfig, KeywordVersion1364_2001},
	"endfunction":         {KwEndfunction, KeywordVersion1364_1995},
	"endgenerate":         {KwEndgenerate, KeywordVersion1364_2001},
	"endgroup":            {KwEndgroup, KeywordVersion1800_2005},
	"endinterface":        {KwEndinterface, KeywordVersion1800_2005},
	"endmodule":           {KwEndmodule, KeywordVersion1364_1995},
	"endpackage":          {KwEndpackage, KeywordVersion1800_2005},
	"endprimitive":        {KwEndprimitive, KeywordVersion1364_1995},
	"endprogram":          {KwEndprogram, KeywordVersion1800_2005},
	"endproperty":         {KwEndproperty, KeywordVersion1800_2005},
	"endspecify":          {KwEndspecify, KeywordVersion1364_1995},
	"endsequence":         {KwEndsequence, KeywordVersion1800_2005},
	"endtable":            {KwEndtable, KeywordVersion1364_1995},
	"endtask":             {KwEndtask, KeywordVersion1364_1995},
	"enum":                {KwEnum, KeywordVersion1800_2005},
	"event":               {KwEvent, KeywordVersion1364_1995},
	"eventually":          {KwEventually, KeywordVersion1800_2009},
	"expect":              {KwExpect, KeywordVersion1800_2005},
	"export":              {KwExport, KeywordVersion1800_2005},
	"extends":             {KwExtends, KeywordVersion1800_2005},
	"extern":              {KwExtern, KeywordVersion1800_2005},
	"final":               {KwFinal, KeywordVersion1800_2005},
	"first_match":         {KwFirstMatch, KeywordVersion1800_2005},
	"for":                 {KwFor, KeywordVersion1364_1995},
	"force":               {KwForce, KeywordVersion1364_1995},
	"foreach":             {KwForeach, KeywordVersion1800_2005},
	"forever":             {KwForever, KeywordVersion1364_1995},
	"fork":                {KwFork, KeywordVersion1364_1995},
	"fork_join":           {KwForkJoin, KeywordVersion1364_1995},
	"function":            {KwFunction, KeywordVersion1364_1995},
	"generate":            {KwGenerate, KeywordVersion1364_2001},
	"genvar":              {KwGenvar, KeywordVersion1364_2001},
	"global":              {KwGlobal, KeywordVersion1800_2009},
	"highz0":              {KwHighz0, KeywordVersion1364_1995},
	"highz1":              {KwHighz1, KeywordVersion1364_1995},
	"if":                  {KwIf, KeywordVersion1364_1995},
	"iff":                 {KwIff, KeywordVersion1800_2005},
	"ifnone":              {KwIfnone, KeywordVersion1364_1995},
	"ignore_bins":         {KwIgnoreBins, KeywordVersion1800_2005},
	"illegal_bins":        {KwIllegalBins, KeywordVersion1800_2005},
	"implements":          {KwImplements, KeywordVersion1800_2012},
	"implies":             {KwImplies, KeywordVersion1800_2005},
	"import":              {KwImport, KeywordVersion1364_2001},
	"incdir":              {KwIncdir, KeywordVersion1364_2001},
	"include":             {KwInclude, KeywordVersion1364_2001},
	"initial":             {KwInitial, KeywordVersion1364_1995},
	"inout":               {KwInout, KeywordVersion1364_1995},
	"input":               {KwInput, KeywordVersion1364_1995},
	"inside":              {KwInside, KeywordVersion1800_2005},
	"instance":            {KwInstance, KeywordVersion1364_2001},
	"int":                 {KwInt, KeywordVersion1800_2005},
	"integer":             {KwInteger, KeywordVersion1364_1995},
	"interconnect":        {KwInterconnect, KeywordVersion1800_2012},
	"interface":           {KwInterface, KeywordVersion1800_2005},
	"intersect":           {KwIntersect, KeywordVersion1800_2005},
	"join":                {KwJoin, KeywordVersion1364_1995},
	"join_any":            {KwJoinAny, KeywordVersion1800_2005},
	"join_none":           {KwJoinNone, KeywordVersion1800_2005},
	"large":               {KwLarge, KeywordVersion1364_1995},
	"let":                 {KwLet, KeywordVersion1800_2005},
	"liblist":             {KwLiblist, KeywordVersion1364_2001},
	"library":             {KwLibrary, KeywordVersion1364_2001},
	"local":               {KwLocal, KeywordVersion1800_2005},
	"localparam":          {KwLocalparam, KeywordVersion1364_2001},
	"logic":               {KwLogic, KeywordVersion1800_2005},
	"longint":             {KwLongint, KeywordVersion1800_2005},
	"macromodule":         {KwMacromodule, KeywordVersion1364_1995},
	"matches":             {KwMatches, KeywordVersion1800_2005},
	"medium":              {KwMedium, KeywordVersion1364_1995},
	"modport":             {KwModport, KeywordVersion1800_2005},
	"module":              {KwModule, KeywordVersion1364_1995},
	"nand":                {KwNand, KeywordVersion1364_1995},
	"negedge":             {KwNegedge, KeywordVersion1364_1995},
	"nettype":             {KwNettype, KeywordVersion1800_2012},
	"new":                 {KwNew, KeywordVersion1800_2005},
	"nexttime":            {KwNexttime, KeywordVersion1800_2009},
	"nmos":                {KwNmos, KeywordVersion1364_1995},
	"nor":                 {KwNor, KeywordVersion1364_1995},
	"noshowcancelled":     {KwNoshowcancelled, KeywordVersion1364_2001},
	"not":                 {KwNot, KeywordVersion1364_1995},
	"notif0":              {KwNotIf0, KeywordVersion1364_1995},
	"notif1":              {KwNotIf1, KeywordVersion1364_1995},
	"null":                {KwNull, KeywordVersion1800_2005},
	"or":                  {KwOr, KeywordVersion1364_1995},
	"output":              {KwOutput, KeywordVersion1364_1995},
	"package":             {KwPackage, KeywordVersion1800_2005},
	"packed":              {KwPacked, KeywordVersion1800_2005},
	"parameter":           {KwParameter, KeywordVersion1364_1995},
	"pmos":                {KwPmos, KeywordVersion1364_1995},
	"posedge":             {KwPosedge, KeywordVersion1364_1995},
	"primitive":           {KwPrimitive, KeywordVersion1364_1995},
	"priority":            {KwPriority, KeywordVersion1800_2005},
	"program":             {KwProgram, KeywordVersion1800_2005},
	"property":            {KwProperty, KeywordVersion1800_2005},
	"protected":           {KwProtected, KeywordVersion1800_2005},
	"pull0":               {KwPull0, KeywordVersion1364_1995},
	"pull1":               {KwPull1, KeywordVersion1364_1995},
	"pulldown":            {KwPulldown, KeywordVersion1364_1995},
	"pullup":              {KwPullup, KeywordVersion1364_1995},
	"pulsestyle_ondetect": {KwPulsestyleOndetect, KeywordVersion1364_2001},
	"pulsestyle_onevent":  {KwPulsestyleOnevent, KeywordVersion1364_2001},
	"pure":                {KwPure, KeywordVersion1800_2005},
	"rand":                {KwRand, KeywordVersion1800_2005},
	"randc":               {KwRandc, KeywordVersion1800_2005},
	"randcase":            {KwRandcase, KeywordVersion1800_2005},
	"randsequence":        {KwRandsequence, KeywordVersion1800_2005},
	"rcmos":               {KwRcmos, KeywordVersion1364_1995},
	"real":                {KwReal, KeywordVersion1364_1995},
	"realtime":            {KwRealtime, KeywordVersion1364_1995},
	"ref":                 {KwRef, KeywordVersion1800_2005},
	"reg":                 {KwReg, KeywordVersion1364_1995},
	"reject_on":           {KwRejectOn, KeywordVersion1800_2009},
	"release":             {KwRelease, KeywordVersion1364_1995},
	"repeat":              {KwRepeat, KeywordVersion1364_1995},
	"restrict":            {KwRestrict, KeywordVersion1800_2009},
	"return":              {KwReturn, KeywordVersion1800_2005},
	"rnmos":               {KwRnmos, KeywordVersion1364_1995},
	"rpmos":               {KwRpmos, KeywordVersion1364_1995},
	"rtran":               {KwRtran, KeywordVersion1364_1995},
	"rtranif0":            {KwRtranIf0, KeywordVersion1364_1995},
	"rtranif1":            {KwRtranIf1, KeywordVersion1364_1995},
	"s_always":            {KwSAlways, KeywordVersion1800_2009},
	"s_eventually":        {KwSEventually, KeywordVersion1800_2009},
	"s_nexttime":          {KwSNexttime, KeywordVersion1800_2009},
	"s_until":             {KwSUntil, KeywordVersion1800_2009},
	"s_until_with":        {KwSUntilWith, KeywordVersion1800_2009},
	"scalared":            {KwScalared, KeywordVersion1364_1995},
	"sequence":            {KwSequence, KeywordVersion1800_2005},
	"shortint":            {KwShortint, KeywordVersion1800_2005},
	"shortreal":           {KwShortreal, KeywordVersion1800_2005},
	"showcancelled":       {KwShowcancelled, KeywordVersion1364_2001},
	"signed":              {KwSigned, KeywordVersion1364_2001},
	"small":               {KwSmall, KeywordVersion1364_1995},
	"soft":                {KwSoft, KeywordVersion1800_2012},
	"solve":               {KwSolve, KeywordVersion1800_2005},
	"specify":             {KwSpecify, KeywordVersion1364_1995},
	"specparam":           {KwSpecparam, KeywordVersion1364_1995},
	"static":              {KwStatic, KeywordVersion1800_2005},
	"string":              {KwString, KeywordVersion1800_2005},
	"strong":              {KwStrong, KeywordVersion1800_2012},
	"strong0":             {KwStrong0, KeywordVersion1364_1995},
	"strong1":             {KwStrong1, KeywordVersion1364_1995},
	"struct":              {KwStruct, KeywordVersion1800_2005},
	"super":               {KwSuper, KeywordVersion1800_2005},
	"supply0":             {KwSupply0, KeywordVersion1364_1995},
	"supply1":             {KwSupply1, KeywordVersion1364_1995},
	"sync_accept_on":      {KwSyncAcceptOn, KeywordVersion1800_2009},
	"sync_reject_on":      {KwSyncRejectOn, KeywordVersion1800_2009},
	"table":               {KwTable, KeywordVersion1364_1995},
	"tagged":              {KwTagged, KeywordVersion1800_2005},
	"task":                {KwTask, KeywordVersion1364_1995},
	"this":                {KwThis, KeywordVersion1800_2005},
	"throughout":          {KwThroughout, KeywordVersion1800_2005},
	"time":                {KwTime, KeywordVersion1364_1995},
	"timeprecision":       {KwTimeprecision, KeywordVersion1800_2005},
	"timeunit":            {KwTimeunit, KeywordVersion1800_2005},
	"tran":                {KwTran, KeywordVersion1364_1995},
	"tranif0":             {KwTranIf0, KeywordVersion1364_1995},
	"tranif1":             {KwTranIf1, KeywordVersion1364_1995},
	"tri":                 {KwTri, KeywordVersion1364_1995},
	"tri0":                {KwTri0, KeywordVersion1364_1995},
	"tri1":                {KwTri1, KeywordVersion1364_1995},
	"triand":              {KwTriand, KeywordVersion1364_1995},
	"trior":               {KwTrior, KeywordVersion1364_1995},
	"trireg":              {KwTrireg, KeywordVersion1364_1995},
	"type":                {KwType, KeywordVersion1800_2005},
	"typedef":             {KwTypedef, KeywordVersion1364_2001},
	"union":               {KwUnion, KeywordVersion1800_2005},
	"unique":              {KwUnique, KeywordVersion1800_2005},
	"unique0":             {KwUnique0, KeywordVersion1800_2009},
	"unsigned":            {KwUnsigned, KeywordVersion1364_2001},
	"until":               {KwUntil, KeywordVersion1800_2009},
	"until_with":          {KwUntilWith, KeywordVersion1800_2009},
	"untyped":             {KwUntyped, KeywordVersion1800_2009},
	"use":                 {KwUse, KeywordVersion1364_2001},
	"uwire":               {KwUwire, KeywordVersion1364_2005},
	"var":                 {KwVar, KeywordVersion1800_2005},
	"vectored":            {KwVectored, KeywordVersion1364_1995},
	"virtual":             {KwVirtual, KeywordVersion1800_2005},
	"void":                {KwVoid, KeywordVersion1800_2005},
	"wait":                {KwWait, KeywordVersion1364_1995},
	"wait_order":          {KwWaitOrder, KeywordVersion1800_2005},
	"wand":                {KwWand, KeywordVersion1364_1995},
	"weak":                {KwWeak, KeywordVersion1800_2012},
	"weak0":               {KwWeak0, KeywordVersion1364_1995},
	"weak1":               {KwWeak1, KeywordVersion1364_1995},
	"while":               {KwWhile, KeywordVersion1364_1995},
	"wildcard":            {KwWildcard, KeywordVersion1800_2005},
	"wire":                {KwWire, KeywordVersion1364_1995},
	"with":                {KwWith, KeywordVersion1800_2005},
	"within":              {KwWithin, KeywordVersion1800_2005},
	"wor":                 {KwWor, KeywordVersion1364_1995},
	"xnor":                {KwXnor, KeywordVersion1364_1995},
	"xor":                 {KwXor, KeywordVersion1364_1995},
}

// LookupKeyword reports the Kind for ident under the given dialect version,
// or (Invalid, false) if ident is not reserved in that dialect (including
// KeywordVersionNone, under which nothing is reserved).
func LookupKeyword(ident string, ver KeywordVersion) (Kind, bool) {
	if ver == KeywordVersionNone {
		return Invalid, false
	}
	e, ok := keywords[ident]
	if !ok || e.minVersion > ver {
		return Invalid, false
	}
	return e.kind, true
}
