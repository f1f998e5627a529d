// Package echoping is an ICMP echo client for a single IPv4 host.
//
// A probe sends one echo request and waits for the reply carrying the
// caller's identifier:
//
//	dst, err := echoping.Resolve("example.com")
//	if err != nil {
//		return err
//	}
//	p := echoping.New()
//	r, err := p.Probe(ctx, dst, uint16(os.Getpid()&0xffff), time.Second)
//	if err != nil {
//		return err
//	}
//	fmt.Println(echoping.FormatResult(dst, r))
//
// Session repeats probes at a fixed interval until its context is cancelled.
// Raw ICMP sockets need elevated privileges.
package echoping
